package products

import (
	"time"

	"artconsole/internal/domain/media"
)

type Product struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	InStock     bool   `json:"in_stock"`
	Featured    bool   `json:"featured"`

	Images []media.Image `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
