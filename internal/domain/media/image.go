package media

import "time"

// Image is a server-side media record as returned by the API. Staged
// uploads live in the form package until a submit succeeds.
type Image struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	ThumbURL *string `json:"thumb_url,omitempty"`
	Alt      string  `json:"alt,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
