package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

// ListingPath is where search terms from any page are sent.
const ListingPath = "/store/category/"

type Controllers struct {
	Home     *controller.HomeController
	Listing  *controller.ListingController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Product  *controller.ProductController
	Review   *controller.ReviewController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	metrics        *middleware.Metrics
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		metrics:        metrics,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(r.metrics.Middleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Storefront is running",
		})
	})
	router.GET("/metrics", r.metrics.Handler())

	if r.config.Catalog.MediaDir != "" && !r.config.S3.Enabled() {
		router.Static(r.config.Catalog.MediaBaseURL, r.config.Catalog.MediaDir)
	}

	searchRedirect := middleware.SearchRedirect(ListingPath)

	// The listing applies q itself, so it is the only page without the redirect.
	listing := router.Group("/store/category")
	listing.Use(r.authMiddleware.OptionalAuthenticate())
	{
		listing.GET("/", r.controllers.Listing.List)
		listing.GET("/:slug/", r.controllers.Listing.List)
	}

	pages := router.Group("/")
	pages.Use(r.authMiddleware.OptionalAuthenticate(), searchRedirect)
	{
		pages.GET("/", r.controllers.Home.Home)
		pages.GET("/contact/", r.controllers.Home.Contact)
		pages.GET("/product/:id/", r.controllers.Product.GetProductDetail)
	}

	order := router.Group("/order")
	order.Use(searchRedirect, r.authMiddleware.Authenticate())
	{
		order.GET("/cart/", r.controllers.Cart.GetCart)
		order.POST("/cart/add", r.controllers.Cart.AddToCart)
		order.POST("/cart/item/:id/delete", r.controllers.Cart.RemoveItem)
		order.DELETE("/cart/item/:id/delete", r.controllers.Cart.RemoveItem)

		order.GET("/checkout/", r.controllers.Checkout.GetCheckout)
		order.POST("/checkout/", r.controllers.Checkout.PlaceOrder)
		order.GET("/history/", r.controllers.Checkout.ListOrders)
	}

	reviews := router.Group("/")
	reviews.Use(r.authMiddleware.Authenticate())
	{
		reviews.POST("/product/:id/reviews", r.controllers.Product.CreateProductReview)
		reviews.POST("/reviews", r.controllers.Review.CreateShopReview)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Request-ID, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Cart-Error")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
