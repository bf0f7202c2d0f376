package stubapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/galleries"
)

func (s *Server) listGalleries(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	search := c.Query("search")
	status := c.Query("status")

	var all []galleries.Gallery
	for _, g := range s.store.galleries {
		if status != "" && g.Status != status {
			continue
		}
		if !matchesSearch(search, g.Name, g.Description) {
			continue
		}
		all = append(all, *g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	c.JSON(http.StatusOK, paginate(c, all))
}

func (s *Server) getGallery(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	g, ok := s.store.galleries[c.Param("slug")]
	if !ok {
		notFound(c, "gallery")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) createGallery(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		validationError(c, map[string][]string{
			"name": {"The name field is required."},
		})
		return
	}

	cover, _ := singleUpload(c, "cover")
	images, _ := listUploads(c, "images")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	now := time.Now()
	g := &galleries.Gallery{
		ID:          s.store.id(),
		Slug:        s.store.gallerySlug(name),
		Name:        name,
		Description: c.PostForm("description"),
		Status:      c.DefaultPostForm("status", "draft"),
		Cover:       cover,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.galleries[g.Slug] = g
	c.JSON(http.StatusCreated, g)
}

func (s *Server) updateGallery(c *gin.Context) {
	if !requireMethodOverride(c) {
		return
	}

	s.store.mu.Lock()
	g, ok := s.store.galleries[c.Param("slug")]
	s.store.mu.Unlock()
	if !ok {
		notFound(c, "gallery")
		return
	}

	if c.PostForm("name") == "" {
		validationError(c, map[string][]string{
			"name": {"The name field is required."},
		})
		return
	}

	newCover, _ := singleUpload(c, "cover")
	newImages, _ := listUploads(c, "images")
	removed := removedIDs(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	g.Name = c.PostForm("name")
	g.Description = c.PostForm("description")
	if status := c.PostForm("status"); status != "" {
		g.Status = status
	}
	if formBool(c, "remove_cover") || (g.Cover != nil && removed[g.Cover.ID]) {
		g.Cover = nil
	}
	if newCover != nil {
		g.Cover = newCover
	}
	g.Images = append(keepImages(g.Images, removed), newImages...)
	g.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, g)
}

func (s *Server) deleteGallery(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	slug := c.Param("slug")
	if _, ok := s.store.galleries[slug]; !ok {
		notFound(c, "gallery")
		return
	}
	delete(s.store.galleries, slug)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
