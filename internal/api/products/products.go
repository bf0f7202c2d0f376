package products

import (
	"context"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/products"
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
	InStock *bool
	Page    int
	PerPage int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.InStock != nil {
		if *f.InStock {
			params.Set("in_stock", "1")
		} else {
			params.Set("in_stock", "0")
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

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[products.Product], error) {
	return transport.GetPage[products.Product](ctx, c.t, "/products", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[products.Product] {
	return func(ctx context.Context, q browse.Query) (transport.Page[products.Product], error) {
		return transport.GetPage[products.Product](ctx, c.t, "/products", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, slug string) (*products.Product, error) {
	var out products.Product
	if err := c.t.Get(ctx, "/products/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Draft struct {
	Title       string `validate:"required"`
	Description string
	Price       string `validate:"required"`
	InStock     bool
	Featured    bool
	Images      *form.AttachmentSet
}

var draftSchema = form.Schema{
	{Name: "title", Kind: form.Scalar},
	{Name: "description", Kind: form.Scalar},
	{Name: "price", Kind: form.Scalar},
	{Name: "in_stock", Kind: form.Bool},
	{Name: "featured", Kind: form.Bool},
	{Name: "images", Kind: form.FileList},
}

func (d *Draft) values() form.Values {
	v := form.Values{
		"title":       d.Title,
		"description": d.Description,
		"price":       d.Price,
		"in_stock":    d.InStock,
		"featured":    d.Featured,
	}
	if d.Images != nil {
		v["images"] = d.Images
	}
	return v
}

func NewDraft() *Draft {
	return &Draft{InStock: true, Images: form.NewAttachmentSet()}
}

func DraftFrom(p *products.Product) *Draft {
	existing := make([]form.Attachment, 0, len(p.Images))
	for _, img := range p.Images {
		existing = append(existing, form.Attachment{ID: img.ID, URL: img.URL})
	}
	return &Draft{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		InStock:     p.InStock,
		Featured:    p.Featured,
		Images:      form.NewAttachmentSet(existing...),
	}
}

func (c *Client) Create(ctx context.Context, d *Draft) (*products.Product, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), false)
	if err != nil {
		return nil, err
	}
	var out products.Product
	if err := c.t.Do(ctx, "POST", "/products", payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, slug string, d *Draft) (*products.Product, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), true)
	if err != nil {
		return nil, err
	}
	var out products.Product
	if err := c.t.Do(ctx, "POST", "/products/"+url.PathEscape(slug), payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, slug string) error {
	return c.t.Delete(ctx, "/products/"+url.PathEscape(slug))
}

// ToggleStock flips in_stock server-side and returns the product.
func (c *Client) ToggleStock(ctx context.Context, slug string) (*products.Product, error) {
	var out products.Product
	if err := c.t.Post(ctx, "/products/"+url.PathEscape(slug)+"/toggle-stock", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NewCreateEditor() *form.Editor[*Draft] {
	return form.NewCreate(NewDraft(), func(ctx context.Context, d *Draft) error {
		_, err := c.Create(ctx, d)
		return err
	})
}

func (c *Client) NewEditEditor(slug string) *form.Editor[*Draft] {
	fetch := func(ctx context.Context) (*Draft, error) {
		p, err := c.Get(ctx, slug)
		if err != nil {
			return nil, err
		}
		return DraftFrom(p), nil
	}
	submit := func(ctx context.Context, d *Draft) error {
		_, err := c.Update(ctx, slug, d)
		return err
	}
	return form.NewEdit(fetch, submit)
}
