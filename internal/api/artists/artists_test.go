package artists_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artconsole/internal/api/artists"
	"artconsole/internal/form"
	"artconsole/internal/testutil"
	"artconsole/internal/transport"
)

func TestArtists_ListAndSearch(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	// The artists listing uses the wrapped {success, data} envelope;
	// the page still comes back normalized.
	page, err := client.List(ctx, artists.Filters{PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.LastPage)
	assert.True(t, page.HasMore())

	page, err = client.List(ctx, artists.Filters{Search: "jane"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "jane-doe", page.Data[0].Slug)

	featured := true
	page, err = client.List(ctx, artists.Filters{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Jane Doe", page.Data[0].Name)
}

func TestArtists_Get(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	a, err := client.Get(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", a.Name)
	assert.True(t, a.Featured)

	_, err = client.Get(ctx, "no-such-artist")
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestArtists_CreateWithAvatarAndSocialLinks(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	d := artists.NewDraft()
	d.Name = "Noor Haddad"
	d.Bio = "Printmaker"
	d.Status = "published"
	d.SocialLinks = map[string]string{
		"instagram": "https://instagram.com/noor",
		"twitter":   "",
	}
	d.Avatar.Stage("portrait.jpg", []byte("jpeg-bytes"))

	created, err := client.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "noor-haddad", created.Slug)
	assert.Equal(t, "published", created.Status)
	require.NotNil(t, created.Avatar)
	assert.Contains(t, created.Avatar.URL, "portrait.jpg")
	// Blank members are filtered before encoding, so the server never
	// sees the empty twitter entry.
	assert.Equal(t, map[string]string{"instagram": "https://instagram.com/noor"}, created.SocialLinks)
}

func TestArtists_CreateValidationError(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)

	d := artists.NewDraft()
	_, err := client.Create(context.Background(), d)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "The artist name field is required.", apiErr.Flatten())
}

func TestArtists_EditEditorRemovesAvatar(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	d := artists.NewDraft()
	d.Name = "Avatar Owner"
	d.Avatar.Stage("face.png", []byte("png-bytes"))
	created, err := client.Create(ctx, d)
	require.NoError(t, err)
	require.NotNil(t, created.Avatar)
	avatarID := created.Avatar.ID

	e := client.NewEditEditor(created.Slug)
	require.NoError(t, e.Load(ctx))
	assert.Equal(t, form.Editing, e.State())
	assert.Equal(t, "Avatar Owner", e.Draft().Name)

	require.NoError(t, e.Update(func(d **artists.Draft) {
		(*d).Bio = "updated bio"
		require.True(t, (*d).Avatar.RemoveExisting(avatarID))
	}))
	require.NoError(t, e.Submit(ctx))
	assert.Equal(t, form.Done, e.State())

	after, err := client.Get(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, "updated bio", after.Bio)
	assert.Nil(t, after.Avatar, "explicit removal deletes the avatar")
}

func TestArtists_EditEditorKeepsOmittedAvatar(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	d := artists.NewDraft()
	d.Name = "Keeps Avatar"
	d.Avatar.Stage("face.png", []byte("png-bytes"))
	created, err := client.Create(ctx, d)
	require.NoError(t, err)

	// An update that touches other fields but never marks the avatar
	// removed must leave it in place.
	e := client.NewEditEditor(created.Slug)
	require.NoError(t, e.Load(ctx))
	require.NoError(t, e.Update(func(d **artists.Draft) { (*d).Bio = "still here" }))
	require.NoError(t, e.Submit(ctx))

	after, err := client.Get(ctx, created.Slug)
	require.NoError(t, err)
	require.NotNil(t, after.Avatar)
	assert.Equal(t, created.Avatar.ID, after.Avatar.ID)
}

func TestArtists_ToggleFeaturedAndDelete(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artists.NewClient(tc)
	ctx := context.Background()

	a, err := client.ToggleFeatured(ctx, "mika-tanaka")
	require.NoError(t, err)
	assert.True(t, a.Featured)

	a, err = client.ToggleFeatured(ctx, "mika-tanaka")
	require.NoError(t, err)
	assert.False(t, a.Featured)

	require.NoError(t, client.Delete(ctx, "mika-tanaka"))
	_, err = client.Get(ctx, "mika-tanaka")
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestArtists_UnauthenticatedGets401(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.Client(ts)
	require.NoError(t, sess.SetToken("bogus"))

	hookFired := false
	sess.OnUnauthorized = func() { hookFired = true }

	_, err := artists.NewClient(tc).List(context.Background(), artists.Filters{})
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.False(t, sess.Authenticated(), "401 clears the stored token")
	assert.True(t, hookFired)
}
