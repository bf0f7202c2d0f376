package reviews

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Review struct {
	ID uint `json:"id"`

	ArtworkSlug string `json:"artwork_slug"`
	Author      string `json:"author"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	Status      string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
