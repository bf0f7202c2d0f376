package galleries

import (
	"context"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/galleries"
	"artconsole/internal/form"
	"artconsole/internal/transport"
)

type Client struct {
	t *transport.Client
}

func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

type Filters struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return params
}

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[galleries.Gallery], error) {
	return transport.GetPage[galleries.Gallery](ctx, c.t, "/galleries", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[galleries.Gallery] {
	return func(ctx context.Context, q browse.Query) (transport.Page[galleries.Gallery], error) {
		return transport.GetPage[galleries.Gallery](ctx, c.t, "/galleries", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, slug string) (*galleries.Gallery, error) {
	var out galleries.Gallery
	if err := c.t.Get(ctx, "/galleries/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Draft struct {
	Name        string `validate:"required"`
	Description string
	Status      string
	Cover       *form.AttachmentSet
	Images      *form.AttachmentSet
}

var draftSchema = form.Schema{
	{Name: "name", Kind: form.Scalar},
	{Name: "description", Kind: form.Scalar},
	{Name: "status", Kind: form.Scalar},
	{Name: "cover", Kind: form.File},
	{Name: "images", Kind: form.FileList},
}

func (d *Draft) values() form.Values {
	v := form.Values{
		"name":        d.Name,
		"description": d.Description,
		"status":      d.Status,
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
		Status: "draft",
		Cover:  form.NewAttachmentSet(),
		Images: form.NewAttachmentSet(),
	}
}

func DraftFrom(g *galleries.Gallery) *Draft {
	d := &Draft{
		Name:        g.Name,
		Description: g.Description,
		Status:      g.Status,
	}
	if g.Cover != nil {
		d.Cover = form.NewAttachmentSet(form.Attachment{ID: g.Cover.ID, URL: g.Cover.URL})
	} else {
		d.Cover = form.NewAttachmentSet()
	}
	existing := make([]form.Attachment, 0, len(g.Images))
	for _, img := range g.Images {
		existing = append(existing, form.Attachment{ID: img.ID, URL: img.URL})
	}
	d.Images = form.NewAttachmentSet(existing...)
	return d
}

func (c *Client) Create(ctx context.Context, d *Draft) (*galleries.Gallery, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), false)
	if err != nil {
		return nil, err
	}
	var out galleries.Gallery
	if err := c.t.Do(ctx, "POST", "/galleries", payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, slug string, d *Draft) (*galleries.Gallery, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), true)
	if err != nil {
		return nil, err
	}
	var out galleries.Gallery
	if err := c.t.Do(ctx, "POST", "/galleries/"+url.PathEscape(slug), payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, slug string) error {
	return c.t.Delete(ctx, "/galleries/"+url.PathEscape(slug))
}

func (c *Client) NewCreateEditor() *form.Editor[*Draft] {
	return form.NewCreate(NewDraft(), func(ctx context.Context, d *Draft) error {
		_, err := c.Create(ctx, d)
		return err
	})
}

func (c *Client) NewEditEditor(slug string) *form.Editor[*Draft] {
	fetch := func(ctx context.Context) (*Draft, error) {
		g, err := c.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		return DraftFrom(g), nil
	}
	submit := func(ctx context.Context, d *Draft) error {
		_, err := c.Update(ctx, slug, d)
		return err
	}
	return form.NewEdit(fetch, submit)
}
