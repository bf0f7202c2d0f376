package stubapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"artconsole/internal/domain/products"
)

func (s *Server) productList(c *gin.Context) []products.Product {
	search := c.Query("search")
	inStock := c.Query("in_stock")

	var all []products.Product
	for _, p := range s.store.products {
		if inStock == "1" && !p.InStock {
			continue
		}
		if inStock == "0" && p.InStock {
			continue
		}
		if !matchesSearch(search, p.Title, p.Description) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *Server) listProducts(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, paginate(c, s.productList(c)))
}

func (s *Server) getProduct(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.store.products[c.Param("slug")]
	if !ok {
		notFound(c, "product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	title := c.PostForm("title")
	price := c.PostForm("price")
	fields := map[string][]string{}
	if title == "" {
		fields["title"] = []string{"The title field is required."}
	}
	if price == "" {
		fields["price"] = []string{"The price field is required."}
	}
	if len(fields) > 0 {
		validationError(c, fields)
		return
	}

	images, _ := listUploads(c, "images")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	now := time.Now()
	p := &products.Product{
		ID:          s.store.id(),
		Slug:        s.store.productSlug(title),
		Title:       title,
		Description: c.PostForm("description"),
		Price:       price,
		InStock:     formBool(c, "in_stock"),
		Featured:    formBool(c, "featured"),
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.products[p.Slug] = p
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	if !requireMethodOverride(c) {
		return
	}

	s.store.mu.Lock()
	p, ok := s.store.products[c.Param("slug")]
	s.store.mu.Unlock()
	if !ok {
		notFound(c, "product")
		return
	}

	newImages, _ := listUploads(c, "images")
	removed := removedIDs(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if title := c.PostForm("title"); title != "" {
		p.Title = title
	}
	p.Description = c.PostForm("description")
	if price := c.PostForm("price"); price != "" {
		p.Price = price
	}
	p.InStock = formBool(c, "in_stock")
	p.Featured = formBool(c, "featured")
	p.Images = append(keepImages(p.Images, removed), newImages...)
	p.UpdatedAt = time.Now()

	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	slug := c.Param("slug")
	if _, ok := s.store.products[slug]; !ok {
		notFound(c, "product")
		return
	}
	delete(s.store.products, slug)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) toggleProductStock(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.store.products[c.Param("slug")]
	if !ok {
		notFound(c, "product")
		return
	}
	p.InStock = !p.InStock
	p.UpdatedAt = time.Now()
	c.JSON(http.StatusOK, p)
}
