package stubapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/artists"
)

func (s *Server) artistList(c *gin.Context, publicOnly bool) []artists.Artist {
	search := c.Query("search")
	status := c.Query("status")
	featured := c.Query("featured")

	var all []artists.Artist
	for _, a := range s.store.artists {
		if publicOnly && a.Status != "published" {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if featured == "1" && !a.Featured {
			continue
		}
		if featured == "0" && a.Featured {
			continue
		}
		if !matchesSearch(search, a.Name, a.Bio) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// listArtists responds with the wrapped {success, data} envelope
// variant, which the client must normalize.
func (s *Server) listArtists(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, wrapped(paginate(c, s.artistList(c, false))))
}

func (s *Server) listPublicArtists(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, wrapped(paginate(c, s.artistList(c, true))))
}

func (s *Server) getArtist(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.artists[c.Param("slug")]
	if !ok {
		notFound(c, "artist")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) createArtist(c *gin.Context) {
	name := c.PostForm("artist_name")
	if name == "" {
		validationError(c, map[string][]string{
			"artist_name": {"The artist name field is required."},
		})
		return
	}

	avatar, _ := singleUpload(c, "avatar")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	now := time.Now()
	a := &artists.Artist{
		ID:          s.store.id(),
		Slug:        s.store.artistSlug(name),
		Name:        name,
		Bio:         c.PostForm("bio"),
		Status:      c.DefaultPostForm("status", "draft"),
		Featured:    formBool(c, "featured"),
		SocialLinks: formJSONMap(c, "social_links"),
		Avatar:      avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
	s.store.artists[a.Slug] = a
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateArtist(c *gin.Context) {
	if !requireMethodOverride(c) {
		return
	}

	s.store.mu.Lock()
	a, ok := s.store.artists[c.Param("slug")]
	s.store.mu.Unlock()
	if !ok {
		notFound(c, "artist")
		return
	}

	if name := c.PostForm("artist_name"); name == "" {
		validationError(c, map[string][]string{
			"artist_name": {"The artist name field is required."},
		})
		return
	}

	newAvatar, _ := singleUpload(c, "avatar")
	removed := removedIDs(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a.Name = c.PostForm("artist_name")
	a.Bio = c.PostForm("bio")
	if status := c.PostForm("status"); status != "" {
		a.Status = status
	}
	a.Featured = formBool(c, "featured")
	if links := formJSONMap(c, "social_links"); links != nil {
		a.SocialLinks = links
	}

	// Removal is opt-in: the avatar survives unless the payload says
	// otherwise explicitly.
	if formBool(c, "remove_avatar") || (a.Avatar != nil && removed[a.Avatar.ID]) {
		a.Avatar = nil
	}
	if newAvatar != nil {
		a.Avatar = newAvatar
	}
	a.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteArtist(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	slug := c.Param("slug")
	if _, ok := s.store.artists[slug]; !ok {
		notFound(c, "artist")
		return
	}
	delete(s.store.artists, slug)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) toggleArtistFeatured(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.artists[c.Param("slug")]
	if !ok {
		notFound(c, "artist")
		return
	}
	a.Featured = !a.Featured
	a.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, a)
}
