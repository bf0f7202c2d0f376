package artists

import (
	"context"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/artists"
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
	Search   string
	Status   string
	Featured *bool
	Page     int
	PerPage  int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
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

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[artists.Artist], error) {
	return transport.GetPage[artists.Artist](ctx, c.t, "/artists", f.params())
}

// PublicList reads the storefront listing: published artists only, no
// token attached.
func (c *Client) PublicList(ctx context.Context, f Filters) (transport.Page[artists.Artist], error) {
	return transport.GetPage[artists.Artist](ctx, c.t, "/public/artists", f.params())
}

// PageFetcher adapts the module to a browse controller.
func (c *Client) PageFetcher() browse.FetchFunc[artists.Artist] {
	return func(ctx context.Context, q browse.Query) (transport.Page[artists.Artist], error) {
		return transport.GetPage[artists.Artist](ctx, c.t, "/artists", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, slug string) (*artists.Artist, error) {
	var out artists.Artist
	if err := c.t.Get(ctx, "/artists/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- drafts

type Draft struct {
	Name        string `validate:"required"`
	Bio         string
	Status      string
	Featured    bool
	SocialLinks map[string]string
	Avatar      *form.AttachmentSet
}

var draftSchema = form.Schema{
	{Name: "artist_name", Kind: form.Scalar},
	{Name: "bio", Kind: form.Scalar},
	{Name: "status", Kind: form.Scalar},
	{Name: "featured", Kind: form.Bool},
	{Name: "social_links", Kind: form.JSON},
	{Name: "avatar", Kind: form.File},
}

func (d *Draft) values() form.Values {
	v := form.Values{
		"artist_name": d.Name,
		"bio":         d.Bio,
		"status":      d.Status,
		"featured":    d.Featured,
	}
	if d.SocialLinks != nil {
		v["social_links"] = d.SocialLinks
	}
	if d.Avatar != nil {
		v["avatar"] = d.Avatar
	}
	return v
}

// NewDraft returns a blank create-mode draft.
func NewDraft() *Draft {
	return &Draft{
		Status:      "draft",
		SocialLinks: map[string]string{},
		Avatar:      form.NewAttachmentSet(),
	}
}

// DraftFrom prefills an edit-mode draft from a fetched artist.
func DraftFrom(a *artists.Artist) *Draft {
	d := &Draft{
		Name:        a.Name,
		Bio:         a.Bio,
		Status:      a.Status,
		Featured:    a.Featured,
		SocialLinks: map[string]string{},
	}
	for k, v := range a.SocialLinks {
		d.SocialLinks[k] = v
	}
	if a.Avatar != nil {
		d.Avatar = form.NewAttachmentSet(form.Attachment{ID: a.Avatar.ID, URL: a.Avatar.URL})
	} else {
		d.Avatar = form.NewAttachmentSet()
	}
	return d
}

// ---------- mutations

func (c *Client) Create(ctx context.Context, d *Draft) (*artists.Artist, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), false)
	if err != nil {
		return nil, err
	}
	var out artists.Artist
	if err := c.t.Do(ctx, "POST", "/artists", payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update goes out as a POST carrying _method=PUT, because multipart
// bodies are always issued as POST.
func (c *Client) Update(ctx context.Context, slug string, d *Draft) (*artists.Artist, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), true)
	if err != nil {
		return nil, err
	}
	var out artists.Artist
	if err := c.t.Do(ctx, "POST", "/artists/"+url.PathEscape(slug), payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, slug string) error {
	return c.t.Delete(ctx, "/artists/"+url.PathEscape(slug))
}

func (c *Client) ToggleFeatured(ctx context.Context, slug string) (*artists.Artist, error) {
	var out artists.Artist
	if err := c.t.Post(ctx, "/artists/"+url.PathEscape(slug)+"/toggle-featured", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- editors

// NewCreateEditor wires a create-mode editor to this module.
func (c *Client) NewCreateEditor() *form.Editor[*Draft] {
	return form.NewCreate(NewDraft(), func(ctx context.Context, d *Draft) error {
		_, err := c.Create(ctx, d)
		return err
	})
}

// NewEditEditor wires an edit-mode editor: it starts in Loading and
// prefills the draft from the fetched artist.
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
