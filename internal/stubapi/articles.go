package stubapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"artconsole/internal/domain/articles"
)

// Article bodies keep a UGC policy: markup survives, scripts do not.
var articleBodyPolicy = bluemonday.UGCPolicy()

func (s *Server) articleList(c *gin.Context, publicOnly bool) []articles.Article {
	search := c.Query("search")
	status := c.Query("status")

	var all []articles.Article
	for _, a := range s.store.articles {
		if publicOnly && a.Status != "published" {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if !matchesSearch(search, a.Title, a.Body) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *Server) listArticles(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, paginate(c, s.articleList(c, false)))
}

func (s *Server) listPublicArticles(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, paginate(c, s.articleList(c, true)))
}

func (s *Server) getArticle(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.articles[c.Param("slug")]
	if !ok {
		notFound(c, "article")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) createArticle(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		validationError(c, map[string][]string{
			"title": {"The title field is required."},
		})
		return
	}

	cover, _ := singleUpload(c, "cover")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	now := time.Now()
	a := &articles.Article{
		ID:        s.store.id(),
		Slug:      s.store.articleSlug(title),
		Title:     title,
		Body:      articleBodyPolicy.Sanitize(c.PostForm("body")),
		Status:    c.DefaultPostForm("status", "draft"),
		Cover:     cover,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.Status == "published" {
		a.PublishedAt = &now
	}
	s.store.articles[a.Slug] = a
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateArticle(c *gin.Context) {
	if !requireMethodOverride(c) {
		return
	}

	s.store.mu.Lock()
	a, ok := s.store.articles[c.Param("slug")]
	s.store.mu.Unlock()
	if !ok {
		notFound(c, "article")
		return
	}

	if c.PostForm("title") == "" {
		validationError(c, map[string][]string{
			"title": {"The title field is required."},
		})
		return
	}

	newCover, _ := singleUpload(c, "cover")
	removed := removedIDs(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a.Title = c.PostForm("title")
	a.Body = articleBodyPolicy.Sanitize(c.PostForm("body"))
	if status := c.PostForm("status"); status != "" {
		if status == "published" && a.PublishedAt == nil {
			now := time.Now()
			a.PublishedAt = &now
		}
		a.Status = status
	}
	if formBool(c, "remove_cover") || (a.Cover != nil && removed[a.Cover.ID]) {
		a.Cover = nil
	}
	if newCover != nil {
		a.Cover = newCover
	}
	a.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteArticle(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	slug := c.Param("slug")
	if _, ok := s.store.articles[slug]; !ok {
		notFound(c, "article")
		return
	}
	delete(s.store.articles, slug)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) likeArticle(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.articles[c.Param("slug")]
	if !ok {
		notFound(c, "article")
		return
	}
	a.Likes++
	c.JSON(http.StatusOK, a)
}
