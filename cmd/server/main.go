package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/internal/router"
	"github.com/ikkim/storefront-backend/internal/storage"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/ikkim/storefront-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting storefront server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Navigation cache is optional; without redis every page reads the roots from the database.
	navCache := service.NewNoopNavigationCache()
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, navigation cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
			navCache = service.NewRedisNavigationCache(redis.GetClient(), cfg.Redis.NavigationTTL)
		}
	}

	var images storage.ImageURLResolver = storage.StaticURLResolver{BaseURL: cfg.Catalog.MediaBaseURL}
	if cfg.S3.Enabled() {
		images = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
			cfg.S3.Private,
		)
	}

	// Initialize repositories
	conn := db.GetDB()
	userRepo := repository.NewUserRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	tagRepo := repository.NewTagRepository(conn)
	cartRepo := repository.NewCartRepository(conn)
	checkoutRepo := repository.NewCheckoutRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)

	// Initialize services
	customerService := service.NewCustomerService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, navCache)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Cart)
	listingService := service.NewListingService(productRepo, tagRepo, categoryService, images, cfg.Catalog.PageSize)
	productService := service.NewProductService(productRepo, images)
	checkoutService := service.NewCheckoutService(checkoutRepo, cartRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	// Initialize controllers
	page := controller.NewPageContext(cartService, categoryService)
	controllers := router.Controllers{
		Home:     controller.NewHomeController(page, reviewService),
		Listing:  controller.NewListingController(page, listingService),
		Cart:     controller.NewCartController(page, cartService),
		Checkout: controller.NewCheckoutController(page, cartService, checkoutService),
		Product:  controller.NewProductController(page, productService, categoryService, reviewService),
		Review:   controller.NewReviewController(reviewService),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, customerService)
	metrics := middleware.NewMetrics("storefront")

	r := router.NewRouter(controllers, authMiddleware, metrics, cfg)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
