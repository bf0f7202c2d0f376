package articles

import (
	"time"

	"github.com/microcosm-cc/bluemonday"

	"artconsole/internal/domain/media"
)

type Article struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`

	Title  string `json:"title"`
	Body   string `json:"body,omitempty"` // HTML; sanitize before rendering
	Status string `json:"status"`
	Likes  int    `json:"likes"`

	Cover *media.Image `json:"cover,omitempty"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var bodyPolicy = bluemonday.UGCPolicy()

// SafeBody returns the article body cleaned for display. The backend
// sanitizes on write too, but rendering never trusts stored HTML.
func (a *Article) SafeBody() string {
	return bodyPolicy.Sanitize(a.Body)
}
