package reviews

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/reviews"
	"artconsole/internal/form"
	"artconsole/internal/transport"
)

// Client for the reviews module. Reviews are JSON-only.
type Client struct {
	t *transport.Client
}

func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

type Filters struct {
	Search      string
	Status      string
	ArtworkSlug string
	Page        int
	PerPage     int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.ArtworkSlug != "" {
		params.Set("artwork", f.ArtworkSlug)
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return params
}

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[reviews.Review], error) {
	return transport.GetPage[reviews.Review](ctx, c.t, "/reviews", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[reviews.Review] {
	return func(ctx context.Context, q browse.Query) (transport.Page[reviews.Review], error) {
		return transport.GetPage[reviews.Review](ctx, c.t, "/reviews", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, id uint) (*reviews.Review, error) {
	var out reviews.Review
	if err := c.t.Get(ctx, fmt.Sprintf("/reviews/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Draft is the storefront review form. The comment minimum is advisory
// here; the server enforces its own.
type Draft struct {
	ArtworkSlug string `json:"artwork_slug" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Rating      int    `json:"rating" validate:"min=1,max=5"`
	Comment     string `json:"comment" validate:"min=10"`
}

// Create posts a public review (storefront side, unauthenticated).
func (c *Client) Create(ctx context.Context, d *Draft) (*reviews.Review, error) {
	var out reviews.Review
	if err := c.t.JSON(ctx, "POST", "/public/reviews", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.t.Delete(ctx, fmt.Sprintf("/reviews/%d", id))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a review through moderation.
func (c *Client) UpdateStatus(ctx context.Context, id uint, status string) (*reviews.Review, error) {
	var out reviews.Review
	err := c.t.JSON(ctx, "POST", fmt.Sprintf("/reviews/%d/status", id), statusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// NewCreateEditor wires the storefront review form to the editor
// machine so it gets the same submit-exclusivity and inline-error
// behavior as the admin forms.
func (c *Client) NewCreateEditor(artworkSlug string) *form.Editor[*Draft] {
	draft := &Draft{ArtworkSlug: artworkSlug, Rating: 5}
	return form.NewCreate(draft, func(ctx context.Context, d *Draft) error {
		_, err := c.Create(ctx, d)
		return err
	})
}
