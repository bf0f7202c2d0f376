package articles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artconsole/internal/api/articles"
	"artconsole/internal/form"
	"artconsole/internal/testutil"
)

func TestArticles_CreateEditorFlow(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := articles.NewClient(tc)
	ctx := context.Background()

	e := client.NewCreateEditor()
	assert.Equal(t, form.Editing, e.State())

	require.NoError(t, e.Update(func(d **articles.Draft) {
		(*d).Title = "Studio Notes, August"
		(*d).Body = "<p>New work in progress.</p>"
		(*d).Status = "published"
	}))
	require.NoError(t, e.Submit(ctx))
	assert.Equal(t, form.Done, e.State())

	page, err := client.List(ctx, articles.Filters{Search: "studio"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	a := page.Data[0]
	assert.Equal(t, "studio-notes-august", a.Slug)
	assert.NotNil(t, a.PublishedAt, "publishing stamps published_at")
}

func TestArticles_BodySanitizedOnWrite(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := articles.NewClient(tc)
	ctx := context.Background()

	d := articles.NewDraft()
	d.Title = "Opening Night"
	d.Body = `<p>Join us.</p><script>alert("x")</script>`
	created, err := client.Create(ctx, d)
	require.NoError(t, err)

	assert.Contains(t, created.Body, "<p>Join us.</p>")
	assert.NotContains(t, created.Body, "<script>")
	assert.NotContains(t, created.SafeBody(), "<script>")
}

func TestArticles_PublicLikeNeedsNoAuth(t *testing.T) {
	ts := testutil.StartServer(t)

	adminTC, _ := testutil.LoginClient(t, ts)
	admin := articles.NewClient(adminTC)
	ctx := context.Background()

	d := articles.NewDraft()
	d.Title = "Print Drop"
	d.Status = "published"
	created, err := admin.Create(ctx, d)
	require.NoError(t, err)

	publicTC, sess := testutil.Client(ts)
	require.False(t, sess.Authenticated())
	liked, err := articles.NewClient(publicTC).Like(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	liked, err = articles.NewClient(publicTC).Like(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)
}

func TestArticles_DraftsHiddenFromPublicList(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := articles.NewClient(tc)
	ctx := context.Background()

	d := articles.NewDraft()
	d.Title = "Unfinished Notes"
	_, err := client.Create(ctx, d)
	require.NoError(t, err)

	page, err := client.List(ctx, articles.Filters{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1, "admin list sees drafts")

	publicTC, _ := testutil.Client(ts)
	publicPage, err := articles.NewClient(publicTC).PublicList(ctx, articles.Filters{})
	require.NoError(t, err)
	assert.Empty(t, publicPage.Data, "drafts stay off the storefront")
}
