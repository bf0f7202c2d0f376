package artworks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artconsole/internal/api/artworks"
	"artconsole/internal/browse"
	domain "artconsole/internal/domain/artworks"
	"artconsole/internal/testutil"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never held")
}

func TestArtworks_Pagination(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)
	ctx := context.Background()

	page, err := client.List(ctx, artworks.Filters{PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 8, page.Total)
	assert.Equal(t, 3, page.LastPage)
	assert.True(t, page.HasMore())

	page, err = client.List(ctx, artworks.Filters{Page: 3, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.False(t, page.HasMore())
}

func TestArtworks_SearchAndFilters(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)
	ctx := context.Background()

	page, err := client.List(ctx, artworks.Filters{Search: "harbor"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "blue-harbor", page.Data[0].Slug)

	featured := true
	page, err = client.List(ctx, artworks.Filters{Featured: &featured})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	page, err = client.List(ctx, artworks.Filters{ArtistSlug: "jane-doe"})
	require.NoError(t, err)
	require.NotEmpty(t, page.Data)
	for _, aw := range page.Data {
		assert.Equal(t, "jane-doe", aw.ArtistSlug)
	}
}

func TestArtworks_BrowseController(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)

	c := browse.NewController(client.PageFetcher(),
		browse.WithPerPage[domain.Artwork](3),
		browse.WithDebounce[domain.Artwork](10*time.Millisecond),
	)
	defer c.Close()

	c.Start()
	waitFor(t, func() bool { return len(c.Items()) == 3 })
	assert.Equal(t, 8, c.Total())
	assert.True(t, c.HasMore())

	// Load-more accumulates pages until the backend runs out.
	require.True(t, c.LoadMore())
	waitFor(t, func() bool { return len(c.Items()) == 6 })
	require.True(t, c.LoadMore())
	waitFor(t, func() bool { return len(c.Items()) == 8 })
	assert.False(t, c.HasMore())
	assert.False(t, c.LoadMore())

	// A typed term resets to a fresh page 1.
	c.SetTerm("harbor")
	waitFor(t, func() bool {
		items := c.Items()
		return len(items) == 1 && items[0].Slug == "blue-harbor"
	})
	assert.False(t, c.HasMore())
}

func TestArtworks_CreateWithImagesAndDimensions(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)
	ctx := context.Background()

	d := artworks.NewDraft()
	d.Title = "Tide Study"
	d.ArtistSlug = "jane-doe"
	d.Year = "2025"
	d.Medium = "oil on canvas"
	d.Price = "900.00"
	d.Status = "published"
	d.Dimensions = domain.Dimensions{Width: 60, Height: 40, Unit: "cm"}
	d.Cover.Stage("cover.jpg", []byte("cover-bytes"))
	d.Images.Stage("one.jpg", []byte("one"))
	d.Images.Stage("two.jpg", []byte("two"))

	created, err := client.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "tide-study", created.Slug)
	require.NotNil(t, created.Dimensions)
	assert.Equal(t, domain.Dimensions{Width: 60, Height: 40, Unit: "cm"}, *created.Dimensions)
	require.NotNil(t, created.Cover)
	assert.Len(t, created.Images, 2)
}

func TestArtworks_UpdateRemovesListedImagesOnly(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)
	ctx := context.Background()

	d := artworks.NewDraft()
	d.Title = "Gallery Wall"
	d.Images.Stage("a.jpg", []byte("a"))
	d.Images.Stage("b.jpg", []byte("b"))
	d.Images.Stage("c.jpg", []byte("c"))
	created, err := client.Create(ctx, d)
	require.NoError(t, err)
	require.Len(t, created.Images, 3)
	removedID := created.Images[1].ID

	upd := artworks.DraftFrom(created)
	require.True(t, upd.Images.RemoveExisting(removedID))
	upd.Images.Stage("d.jpg", []byte("d"))

	after, err := client.Update(ctx, created.Slug, upd)
	require.NoError(t, err)
	require.Len(t, after.Images, 3, "one removed, one added")
	for _, img := range after.Images {
		assert.NotEqual(t, removedID, img.ID)
	}
}

func TestArtworks_PublicListNeedsNoAuth(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.Client(ts)
	require.False(t, sess.Authenticated())

	page, err := artworks.NewClient(tc).PublicList(context.Background(), artworks.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 8, page.Total, "all seeded artworks are published")
}

func TestArtworks_SlugCollisionGetsSuffix(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, _ := testutil.LoginClient(t, ts)
	client := artworks.NewClient(tc)
	ctx := context.Background()

	d := artworks.NewDraft()
	d.Title = "Blue Harbor"
	created, err := client.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "blue-harbor-2", created.Slug)
}
