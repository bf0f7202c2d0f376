package stubapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/artworks"
)

func (s *Server) artworkList(c *gin.Context, publicOnly bool) []artworks.Artwork {
	search := c.Query("search")
	status := c.Query("status")
	artist := c.Query("artist")
	featured := c.Query("featured")

	var all []artworks.Artwork
	for _, a := range s.store.artworks {
		if publicOnly && a.Status != artworks.StatusPublished {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if artist != "" && a.ArtistSlug != artist {
			continue
		}
		if featured == "1" && !a.Featured {
			continue
		}
		if featured == "0" && a.Featured {
			continue
		}
		if !matchesSearch(search, a.Title, a.Description) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *Server) listArtworks(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, paginate(c, s.artworkList(c, false)))
}

func (s *Server) listPublicArtworks(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, paginate(c, s.artworkList(c, true)))
}

func (s *Server) getArtwork(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.artworks[c.Param("slug")]
	if !ok {
		notFound(c, "artwork")
		return
	}
	c.JSON(http.StatusOK, a)
}

func parseDimensions(c *gin.Context) *artworks.Dimensions {
	raw := c.PostForm("dimensions")
	if raw == "" {
		return nil
	}
	var d artworks.Dimensions
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil
	}
	return &d
}

func (s *Server) createArtwork(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		validationError(c, map[string][]string{
			"title": {"The title field is required."},
		})
		return
	}

	cover, _ := singleUpload(c, "cover")
	images, _ := listUploads(c, "images")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	now := time.Now()
	a := &artworks.Artwork{
		ID:          s.store.id(),
		Slug:        s.store.artworkSlug(title),
		Title:       title,
		ArtistSlug:  c.PostForm("artist_slug"),
		Description: c.PostForm("description"),
		Year:        c.PostForm("year"),
		Medium:      c.PostForm("medium"),
		Price:       c.PostForm("price"),
		Dimensions:  parseDimensions(c),
		Status:      c.DefaultPostForm("status", artworks.StatusDraft),
		Featured:    formBool(c, "featured"),
		Sold:        formBool(c, "sold"),
		Cover:       cover,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.artworks[a.Slug] = a
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateArtwork(c *gin.Context) {
	if !requireMethodOverride(c) {
		return
	}

	s.store.mu.Lock()
	a, ok := s.store.artworks[c.Param("slug")]
	s.store.mu.Unlock()
	if !ok {
		notFound(c, "artwork")
		return
	}

	if c.PostForm("title") == "" {
		validationError(c, map[string][]string{
			"title": {"The title field is required."},
		})
		return
	}

	newCover, _ := singleUpload(c, "cover")
	newImages, _ := listUploads(c, "images")
	removed := removedIDs(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a.Title = c.PostForm("title")
	a.ArtistSlug = c.PostForm("artist_slug")
	a.Description = c.PostForm("description")
	a.Year = c.PostForm("year")
	a.Medium = c.PostForm("medium")
	a.Price = c.PostForm("price")
	if d := parseDimensions(c); d != nil {
		a.Dimensions = d
	}
	if status := c.PostForm("status"); status != "" {
		a.Status = status
	}
	a.Featured = formBool(c, "featured")
	a.Sold = formBool(c, "sold")

	if formBool(c, "remove_cover") || (a.Cover != nil && removed[a.Cover.ID]) {
		a.Cover = nil
	}
	if newCover != nil {
		a.Cover = newCover
	}
	a.Images = append(keepImages(a.Images, removed), newImages...)
	a.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteArtwork(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	slug := c.Param("slug")
	if _, ok := s.store.artworks[slug]; !ok {
		notFound(c, "artwork")
		return
	}
	delete(s.store.artworks, slug)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) toggleArtworkFeatured(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.artworks[c.Param("slug")]
	if !ok {
		notFound(c, "artwork")
		return
	}
	a.Featured = !a.Featured
	a.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, a)
}
