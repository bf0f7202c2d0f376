package galleries

import (
	"time"

	"artconsole/internal/domain/media"
)

type Gallery struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`

	Cover  *media.Image  `json:"cover,omitempty"`
	Images []media.Image `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
