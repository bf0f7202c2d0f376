package articles

import (
	"context"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/articles"
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

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[articles.Article], error) {
	return transport.GetPage[articles.Article](ctx, c.t, "/articles", f.params())
}

// PublicList reads the storefront listing, which only carries
// published articles and needs no token.
func (c *Client) PublicList(ctx context.Context, f Filters) (transport.Page[articles.Article], error) {
	return transport.GetPage[articles.Article](ctx, c.t, "/public/articles", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[articles.Article] {
	return func(ctx context.Context, q browse.Query) (transport.Page[articles.Article], error) {
		return transport.GetPage[articles.Article](ctx, c.t, "/articles", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, slug string) (*articles.Article, error) {
	var out articles.Article
	if err := c.t.Get(ctx, "/articles/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Draft struct {
	Title  string `validate:"required"`
	Body   string
	Status string
	Cover  *form.AttachmentSet
}

var draftSchema = form.Schema{
	{Name: "title", Kind: form.Scalar},
	{Name: "body", Kind: form.Scalar},
	{Name: "status", Kind: form.Scalar},
	{Name: "cover", Kind: form.File},
}

func (d *Draft) values() form.Values {
	v := form.Values{
		"title":  d.Title,
		"body":   d.Body,
		"status": d.Status,
	}
	if d.Cover != nil {
		v["cover"] = d.Cover
	}
	return v
}

func NewDraft() *Draft {
	return &Draft{Status: "draft", Cover: form.NewAttachmentSet()}
}

func DraftFrom(a *articles.Article) *Draft {
	d := &Draft{
		Title:  a.Title,
		Body:   a.Body,
		Status: a.Status,
	}
	if a.Cover != nil {
		d.Cover = form.NewAttachmentSet(form.Attachment{ID: a.Cover.ID, URL: a.Cover.URL})
	} else {
		d.Cover = form.NewAttachmentSet()
	}
	return d
}

func (c *Client) Create(ctx context.Context, d *Draft) (*articles.Article, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), false)
	if err != nil {
		return nil, err
	}
	var out articles.Article
	if err := c.t.Do(ctx, "POST", "/articles", payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, slug string, d *Draft) (*articles.Article, error) {
	payload, err := form.EncodeMultipart(draftSchema, d.values(), true)
	if err != nil {
		return nil, err
	}
	var out articles.Article
	if err := c.t.Do(ctx, "POST", "/articles/"+url.PathEscape(slug), payload.Reader(), payload.ContentType(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, slug string) error {
	return c.t.Delete(ctx, "/articles/"+url.PathEscape(slug))
}

// Like is the public storefront like action; no bearer attached since
// the route is under /public/.
func (c *Client) Like(ctx context.Context, slug string) (*articles.Article, error) {
	var out articles.Article
	if err := c.t.Post(ctx, "/public/articles/"+url.PathEscape(slug)+"/like", &out); err != nil {
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
