package artworks

import (
	"time"

	"artconsole/internal/domain/media"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Dimensions struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	Unit   string  `json:"unit,omitempty"`
}

type Artwork struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`

	Title       string `json:"title"`
	ArtistSlug  string `json:"artist_slug,omitempty"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Price       string `json:"price,omitempty"`

	Dimensions *Dimensions `json:"dimensions,omitempty"`

	Status   string `json:"status"`
	Featured bool   `json:"featured"`
	Sold     bool   `json:"sold"`

	Cover  *media.Image  `json:"cover,omitempty"`
	Images []media.Image `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
