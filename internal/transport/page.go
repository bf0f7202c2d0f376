package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Page is the backend's pagination envelope, normalized.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
}

// HasMore reports whether another page exists. current_page < last_page
// is the one canonical signal; nothing is inferred from page sizes.
func (p Page[T]) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

type rawPage struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Current int             `json:"current_page"`
	Last    int             `json:"last_page"`
	Total   int             `json:"total"`
	PerPage int             `json:"per_page"`
}

// DecodePage accepts both envelope shapes the backend produces: the
// bare {data, current_page, ...} form and the {success, data: {...}}
// wrapper around it.
func DecodePage[T any](body []byte) (Page[T], error) {
	var page Page[T]

	var raw rawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return page, fmt.Errorf("decode page envelope: %w", err)
	}
	if raw.Success != nil {
		if !*raw.Success {
			return page, fmt.Errorf("decode page envelope: success=false")
		}
		if err := json.Unmarshal(raw.Data, &raw); err != nil {
			return page, fmt.Errorf("decode wrapped page envelope: %w", err)
		}
	}

	page.CurrentPage = raw.Current
	page.LastPage = raw.Last
	page.Total = raw.Total
	page.PerPage = raw.PerPage
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, &page.Data); err != nil {
			return page, fmt.Errorf("decode page data: %w", err)
		}
	}
	return page, nil
}

// GetPage fetches path with params and decodes the result as a page of T.
func GetPage[T any](ctx context.Context, c *Client, path string, params url.Values) (Page[T], error) {
	body, err := c.DoRaw(ctx, "GET", path, nil, "", params)
	if err != nil {
		return Page[T]{}, err
	}
	return DecodePage[T](body)
}
