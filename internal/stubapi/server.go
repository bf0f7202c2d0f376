package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server is an in-process backend with the same surface the console
// talks to in production. Integration tests point the transport client
// at it via httptest.
type Server struct {
	store  *Store
	secret []byte
}

func New(secret []byte, adminEmail, adminPassword string) *Server {
	return &Server{
		store:  NewStore(adminEmail, adminPassword),
		secret: secret,
	}
}

func (s *Server) Store() *Store { return s.store }

// Register wires every route onto r. Middleware the caller wants
// engine-wide (CORS, logging) goes on r before calling this.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Storefront routes, no bearer token. Write bodies get sanitized.
	public := r.Group("/")
	public.Use(sanitizeJSONMiddleware())

	public.POST("/auth/login", s.login)
	public.POST("/auth/logout", s.logout)

	public.GET("/public/artists", s.listPublicArtists)
	public.GET("/public/artworks", s.listPublicArtworks)
	public.GET("/public/articles", s.listPublicArticles)
	public.POST("/public/articles/:slug/like", s.likeArticle)
	public.POST("/public/reviews", s.createReview)

	// Admin console routes. Multipart updates arrive as POST with a
	// _method=PUT override, so update and create share the verb.
	admin := r.Group("/")
	admin.Use(authMiddleware(s.secret))

	admin.GET("/artists", s.listArtists)
	admin.GET("/artists/:slug", s.getArtist)
	admin.POST("/artists", s.createArtist)
	admin.POST("/artists/:slug", s.updateArtist)
	admin.DELETE("/artists/:slug", s.deleteArtist)
	admin.POST("/artists/:slug/toggle-featured", s.toggleArtistFeatured)

	admin.GET("/artworks", s.listArtworks)
	admin.GET("/artworks/:slug", s.getArtwork)
	admin.POST("/artworks", s.createArtwork)
	admin.POST("/artworks/:slug", s.updateArtwork)
	admin.DELETE("/artworks/:slug", s.deleteArtwork)
	admin.POST("/artworks/:slug/toggle-featured", s.toggleArtworkFeatured)

	admin.GET("/products", s.listProducts)
	admin.GET("/products/:slug", s.getProduct)
	admin.POST("/products", s.createProduct)
	admin.POST("/products/:slug", s.updateProduct)
	admin.DELETE("/products/:slug", s.deleteProduct)
	admin.POST("/products/:slug/toggle-stock", s.toggleProductStock)

	admin.GET("/galleries", s.listGalleries)
	admin.GET("/galleries/:slug", s.getGallery)
	admin.POST("/galleries", s.createGallery)
	admin.POST("/galleries/:slug", s.updateGallery)
	admin.DELETE("/galleries/:slug", s.deleteGallery)

	admin.GET("/articles", s.listArticles)
	admin.GET("/articles/:slug", s.getArticle)
	admin.POST("/articles", s.createArticle)
	admin.POST("/articles/:slug", s.updateArticle)
	admin.DELETE("/articles/:slug", s.deleteArticle)

	admin.GET("/orders", s.listOrders)
	admin.GET("/orders/:id", s.getOrder)
	admin.POST("/orders/:id/status", s.updateOrderStatus)
	admin.POST("/orders/:id/payment-status", s.updateOrderPaymentStatus)
	admin.DELETE("/orders/:id", s.deleteOrder)

	admin.GET("/reviews", s.listReviews)
	admin.GET("/reviews/:id", s.getReview)
	admin.POST("/reviews/:id/status", s.updateReviewStatus)
	admin.DELETE("/reviews/:id", s.deleteReview)
}

// Handler returns a ready engine for httptest servers.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.Register(r)
	return r
}
