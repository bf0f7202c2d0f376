package stubapi

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"artconsole/internal/domain/articles"
	"artconsole/internal/domain/artists"
	"artconsole/internal/domain/artworks"
	"artconsole/internal/domain/galleries"
	"artconsole/internal/domain/media"
	"artconsole/internal/domain/orders"
	"artconsole/internal/domain/products"
	"artconsole/internal/domain/reviews"
	"artconsole/internal/domain/site"
)

// Store keeps every fixture in memory. It exists to exercise the
// console SDK, not to persist anything.
type Store struct {
	mu sync.Mutex

	artists   map[string]*artists.Artist
	artworks  map[string]*artworks.Artwork
	products  map[string]*products.Product
	galleries map[string]*galleries.Gallery
	articles  map[string]*articles.Article
	orders    map[uint]*orders.Order
	reviews   map[uint]*reviews.Review

	nextID uint

	adminEmail string
	adminHash  []byte
}

func NewStore(adminEmail, adminPassword string) *Store {
	hash, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	return &Store{
		artists:    make(map[string]*artists.Artist),
		artworks:   make(map[string]*artworks.Artwork),
		products:   make(map[string]*products.Product),
		galleries:  make(map[string]*galleries.Gallery),
		articles:   make(map[string]*articles.Article),
		orders:     make(map[uint]*orders.Order),
		reviews:    make(map[uint]*reviews.Review),
		adminEmail: adminEmail,
		adminHash:  hash,
	}
}

func (s *Store) checkAdmin(email, password string) bool {
	if email != s.adminEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) == nil
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) artistSlug(name string) string {
	return site.UniqueSlug(name, func(candidate string) bool {
		_, taken := s.artists[candidate]
		return taken
	})
}

func (s *Store) artworkSlug(title string) string {
	return site.UniqueSlug(title, func(candidate string) bool {
		_, taken := s.artworks[candidate]
		return taken
	})
}

func (s *Store) productSlug(title string) string {
	return site.UniqueSlug(title, func(candidate string) bool {
		_, taken := s.products[candidate]
		return taken
	})
}

func (s *Store) gallerySlug(name string) string {
	return site.UniqueSlug(name, func(candidate string) bool {
		_, taken := s.galleries[candidate]
		return taken
	})
}

func (s *Store) articleSlug(title string) string {
	return site.UniqueSlug(title, func(candidate string) bool {
		_, taken := s.articles[candidate]
		return taken
	})
}

// newImage fabricates a media record for an uploaded file.
func newImage(filename string) *media.Image {
	id := uuid.NewString()
	now := time.Now()
	return &media.Image{
		ID:        id,
		URL:       "/media/" + id + "/" + filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Seed loads a small fixture set so lists have something to show.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	names := []string{"Jane Doe", "Arno Verhoeven", "Mika Tanaka", "Lena Petrova"}
	for i, name := range names {
		slug := site.MakeSlug(name)
		s.artists[slug] = &artists.Artist{
			ID:          s.id(),
			Slug:        slug,
			Name:        name,
			Bio:         "Seed artist " + name,
			Featured:    i == 0,
			Status:      "published",
			SocialLinks: map[string]string{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	titles := []string{
		"Blue Harbor", "Night Market", "Quiet Orchard", "Paper Cranes",
		"Salt and Stone", "Copper Field", "Winter Glass", "Red Dunes",
	}
	for i, title := range titles {
		slug := site.MakeSlug(title)
		s.artworks[slug] = &artworks.Artwork{
			ID:         s.id(),
			Slug:       slug,
			Title:      title,
			ArtistSlug: site.MakeSlug(names[i%len(names)]),
			Status:     artworks.StatusPublished,
			Featured:   i < 2,
			Year:       "2024",
			Price:      "1200.00",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	for _, title := range []string{"Harbor Print", "Orchard Tote", "Crane Poster"} {
		slug := site.MakeSlug(title)
		s.products[slug] = &products.Product{
			ID:        s.id(),
			Slug:      slug,
			Title:     title,
			Price:     "35.00",
			InStock:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	order := &orders.Order{
		ID:            s.id(),
		Number:        "ORD-1001",
		CustomerName:  "Sam Carter",
		CustomerEmail: "sam@example.com",
		Status:        orders.StatusPending,
		PaymentStatus: orders.PaymentPending,
		Total:         "70.00",
		Items: []orders.Item{
			{ProductSlug: "harbor-print", Title: "Harbor Print", Quantity: 2, UnitPrice: "35.00"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[order.ID] = order

	review := &reviews.Review{
		ID:          s.id(),
		ArtworkSlug: "blue-harbor",
		Author:      "Visitor",
		Rating:      5,
		Comment:     "Stunning use of color and light.",
		Status:      reviews.StatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.reviews[review.ID] = review
}
