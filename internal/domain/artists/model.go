package artists

import (
	"time"

	"artconsole/internal/domain/media"
)

type Artist struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`

	Name     string `json:"artist_name"`
	Bio      string `json:"bio,omitempty"`
	Featured bool   `json:"featured"`
	Status   string `json:"status"` // draft | published | archived

	// Blank links are filtered out before any submit, so an empty map
	// round-trips as {}.
	SocialLinks map[string]string `json:"social_links,omitempty"`

	Avatar *media.Image `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
