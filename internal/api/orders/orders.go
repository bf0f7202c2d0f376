package orders

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"artconsole/internal/browse"
	"artconsole/internal/domain/orders"
	"artconsole/internal/transport"
)

// Client for the orders module. Orders carry no media, so every body
// here is plain JSON; there is no multipart path.
type Client struct {
	t *transport.Client
}

func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

type Filters struct {
	Search        string
	Status        string
	PaymentStatus string
	Page          int
	PerPage       int
}

func (f Filters) params() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.PaymentStatus != "" {
		params.Set("payment_status", f.PaymentStatus)
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return params
}

func (c *Client) List(ctx context.Context, f Filters) (transport.Page[orders.Order], error) {
	return transport.GetPage[orders.Order](ctx, c.t, "/orders", f.params())
}

func (c *Client) PageFetcher() browse.FetchFunc[orders.Order] {
	return func(ctx context.Context, q browse.Query) (transport.Page[orders.Order], error) {
		return transport.GetPage[orders.Order](ctx, c.t, "/orders", q.Params())
	}
}

func (c *Client) Get(ctx context.Context, id uint) (*orders.Order, error) {
	var out orders.Order
	if err := c.t.Get(ctx, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.t.Delete(ctx, fmt.Sprintf("/orders/%d", id))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is a single-field POST, not a full update.
func (c *Client) UpdateStatus(ctx context.Context, id uint, status string) (*orders.Order, error) {
	var out orders.Order
	err := c.t.JSON(ctx, "POST", fmt.Sprintf("/orders/%d/status", id), statusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id uint, status string) (*orders.Order, error) {
	var out orders.Order
	err := c.t.JSON(ctx, "POST", fmt.Sprintf("/orders/%d/payment-status", id), statusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
