package artworks

import (
	"context"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/artworks"
	"artconsole/internal/form"
	"artconsole/internal/transport"
)

type Client struct {
	t *transport.Client
}

func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

// ---------- listing

type Filters struct {
	Search     string
	Status     string
	ArtistSlug string
	Featured   *bool
	Page       int
	PerPage    int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.ArtistSlug != "" {
		params.Set("artist", f.ArtistSlug)
	}
	if f.Featured != nil {
		if *f.Featured {
			params.Set("featured", "1")
		} else {
			params.Set("featured", "0")
		}
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return params
}

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[artworks.Artwork], error) {
	return transport.GetPage[artworks.Artwork](ctx, c.t, "/artworks", f.params())
}

// PublicList reads the storefront listing: published artworks only, no
// token attached.
func (c *Client) PublicList(ctx context.Context, f Filters) (transport.Page[artworks.Artwork], error) {
	return transport.GetPage[artworks.Artwork](ctx, c.t, "/public/artworks", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[artworks.Artwork] {
	return func(ctx context.Context, q browse.Query) (transport.Page[artworks.Artwork], error) {
		return transport.GetPage[artworks.Artwork](ctx, c.t, "/artworks", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, slug string) (*artworks.Artwork, error) {
	var out artworks.Artwork
	if err := c.t.Get(ctx, "/artworks/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- drafts

type Draft struct {
	Title       string `validate:"required"`
	ArtistSlug  string
	Description string
	Year        string
	Medium      string
	Price       string
	Dimensions  artworks.Dimensions
	Status      string
	Featured    bool
	Sold        bool
	Cover       *form.AttachmentSet
	Images      *form.AttachmentSet
}

var draftSchema = form.Schema{
	{Name: "title", Kind: form.Scalar},
	{Name: "artist_slug", Kind: form.Scalar},
	{Name: "description", Kind: form.Scalar},
	{Name: "year", Kind: form.Scalar},
	{Name: "medium", Kind: form.Scalar},
	{Name: "price", Kind: form.Scalar},
	{Name: "dimensions", Kind: form.JSON},
	{Name: "status", Kind: form.Scalar},
	{Name: "featured", Kind: form.Bool},
	{Name: "sold", Kind: form.Bool},
	{Name: "cover", Kind: form.File},
	{Name: "images", Kind: form.FileList},
}

func (d *Draft) values() form.Values {
	v := form.Values{
		"title":       d.Title,
		"artist_slug": d.ArtistSlug,
		"description": d.Description,
		"year":        d.Year,
		"medium":      d.Medium,
		"price":       d.Price,
		"dimensions":  d.Dimensions,
		"status":      d.Status,
		"featured":    d.Featured,
		"sold":        d.Sold,
	}
	if d.Cover != nil {
		v["cover"] = d.Cover
	}
	if d.Images != nil {
		v["images"] = d.Images
	}
	return v
}

func NewDraft() *Draft {
	return &Draft{
		Status: artworks.StatusDraft,
		Cover:  form.NewAttachmentSet(),
		Images: form.NewAttachmentSet(),
	}
}

func DraftFrom(a *artworks.Artwork) *Draft {
	d := &Draft{
		Title:       a.Title,
		ArtistSlug:  a.ArtistSlug,
		Description: a.Description,
		Year:        a.Year,
		Medium:      a.Medium,
		Price:       a.Price,
		Status:      a.Status,
		Featured:    a.Featured,
		Sold:        a.Sold,
	}
	if a.Dimensions != nil {
		d.Dimensions = *a.Dimensions
	}
	if a.Cover != nil {
		d.Cover = form.NewAttachmentSet(form.Attachment{ID: a.Cover.ID, URL: a.Cover.URL})
	} else {
		d.Cover = form.NewAttachmentSet()
	}
	existing := make([]form.Attachment, 0, len(a.Images))
	for _, img := range a.Images {
		existing = append(existing, form.Attachment{ID: img.ID, URL: img.URL})
	}
	d.Images = form.NewAttachmentSet(existing...)
	return d
}

// ---------- mutations

func (c *Client) Create(ctx context.Context, d *Draft) (*artworks.Artwork, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), false)
	if err != nil {
		return nil, err
	}
	var out artworks.Artwork
	if err := c.t.Do(ctx, "POST", "/artworks", payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, slug string, d *Draft) (*artworks.Artwork, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), true)
	if err != nil {
		return nil, err
	}
	var out artworks.Artwork
	if err := c.t.Do(ctx, "POST", "/artworks/"+url.PathEscape(slug), payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, slug string) error {
	return c.t.Delete(ctx, "/artworks/"+url.PathEscape(slug))
}

func (c *Client) ToggleFeatured(ctx context.Context, slug string) (*artworks.Artwork, error) {
	var out artworks.Artwork
	if err := c.t.Post(ctx, "/artworks/"+url.PathEscape(slug)+"/toggle-featured", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- editors

func (c *Client) NewCreateEditor() *form.Editor[*Draft] {
	return form.NewCreate(NewDraft(), func(ctx context.Context, d *Draft) error {
		_, err := c.Create(ctx, d)
		return err
	})
}

func (c *Client) NewEditEditor(slug string) *form.Editor[*Draft] {
	fetch := func(ctx context.Context) (*Draft, error) {
		a, err := c.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		return DraftFrom(a), nil
	}
	submit := func(ctx context.Context, d *Draft) error {
		_, err := c.Update(ctx, slug, d)
		return err
	}
	return form.NewEdit(fetch, submit)
}
