package stubapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/reviews"
)

func (s *Server) listReviews(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	search := c.Query("search")
	status := c.Query("status")
	artwork := c.Query("artwork")

	var all []reviews.Review
	for _, r := range s.store.reviews {
		if status != "" && r.Status != status {
			continue
		}
		if artwork != "" && r.ArtworkSlug != artwork {
			continue
		}
		if !matchesSearch(search, r.Author, r.Comment) {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	c.JSON(http.StatusOK, paginate(c, all))
}

func (s *Server) reviewByID(c *gin.Context) (*reviews.Review, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c, "review")
		return nil, false
	}
	r, ok := s.store.reviews[uint(id)]
	if !ok {
		notFound(c, "review")
		return nil, false
	}
	return r, true
}

func (s *Server) getReview(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	r, ok := s.reviewByID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// createReview is the public storefront submission; it produces the
// 422 field-error shape the editor flattens.
func (s *Server) createReview(c *gin.Context) {
	var input struct {
		ArtworkSlug string `json:"artwork_slug"`
		Author      string `json:"author"`
		Rating      int    `json:"rating"`
		Comment     string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string][]string{}
	if input.ArtworkSlug == "" {
		fields["artwork_slug"] = []string{"The artwork slug field is required."}
	}
	if input.Author == "" {
		fields["author"] = []string{"The author field is required."}
	}
	if input.Rating < 1 || input.Rating > 5 {
		fields["rating"] = []string{"The rating must be between 1 and 5."}
	}
	if len(input.Comment) < 10 {
		fields["comment"] = []string{"The comment must be at least 10 characters."}
	}
	if len(fields) > 0 {
		validationError(c, fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.artworks[input.ArtworkSlug]; !ok {
		notFound(c, "artwork")
		return
	}
	now := time.Now()
	r := &reviews.Review{
		ID:          s.store.id(),
		ArtworkSlug: input.ArtworkSlug,
		Author:      input.Author,
		Rating:      input.Rating,
		Comment:     input.Comment,
		Status:      reviews.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.reviews[r.ID] = r
	c.JSON(http.StatusCreated, r)
}

func (s *Server) updateReviewStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	r, ok := s.reviewByID(c)
	if !ok {
		return
	}
	r.Status = input.Status
	r.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, r)
}

func (s *Server) deleteReview(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	r, ok := s.reviewByID(c)
	if !ok {
		return
	}
	delete(s.store.reviews, r.ID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
