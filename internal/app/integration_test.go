package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/internal/router"
	"github.com/ikkim/storefront-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cfg := &config.Config{
		Server:  config.ServerConfig{GinMode: gin.TestMode},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Cart:    config.CartConfig{DefaultFlatRate: 10},
		Catalog: config.CatalogConfig{PageSize: 6},
	}

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	checkoutRepo := repository.NewCheckoutRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	customerService := service.NewCustomerService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, service.NewNoopNavigationCache())
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Cart)
	listingService := service.NewListingService(productRepo, tagRepo, categoryService, nil, cfg.Catalog.PageSize)
	productService := service.NewProductService(productRepo, nil)
	checkoutService := service.NewCheckoutService(checkoutRepo, cartRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	page := controller.NewPageContext(cartService, categoryService)
	controllers := router.Controllers{
		Home:     controller.NewHomeController(page, reviewService),
		Listing:  controller.NewListingController(page, listingService),
		Cart:     controller.NewCartController(page, cartService),
		Checkout: controller.NewCheckoutController(page, cartService, checkoutService),
		Product:  controller.NewProductController(page, productService, categoryService, reviewService),
		Review:   controller.NewReviewController(reviewService),
	}

	authMiddleware := middleware.NewAuthMiddleware(testSecret, customerService)
	r := router.NewRouter(controllers, authMiddleware, middleware.NewMetrics(""), cfg)

	return &TestServer{
		Router: r.Setup(),
		DB:     testDB,
	}
}

func (s *TestServer) do(t *testing.T, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIntegration_ShoppingFlow(t *testing.T) {
	server := setupIntegrationTest(t)

	fruit := &model.Category{Name: "Fruit", Slug: "fruit"}
	require.NoError(t, server.DB.Create(fruit).Error)
	apple := &model.Product{Name: "Apple", Slug: "apple", Price: 3.3, CategoryID: fruit.ID}
	require.NoError(t, server.DB.Create(apple).Error)

	token, err := util.GenerateToken(42, "ann@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("guest home", func(t *testing.T) {
		w := server.do(t, httptest.NewRequest(http.MethodGet, "/", nil), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cart_count":0`)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("guest cart requires login", func(t *testing.T) {
		w := server.do(t, httptest.NewRequest(http.MethodGet, "/order/cart/", nil), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("add to cart", func(t *testing.T) {
		req := formRequest(http.MethodPost, "/order/cart/add", url.Values{
			"product":          {fmt.Sprint(apple.ID)},
			"product_quantity": {"2"},
		})
		req.Header.Set("Referer", "/store/category/")
		w := server.do(t, req, token)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/store/category/", w.Header().Get("Location"))

		var user model.User
		require.NoError(t, server.DB.First(&user, 42).Error)
		assert.Equal(t, "ann", user.Name)
	})

	t.Run("cart totals", func(t *testing.T) {
		w := server.do(t, httptest.NewRequest(http.MethodGet, "/order/cart/", nil), token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"subtotal":7`)
		assert.Contains(t, w.Body.String(), `"total":17`)
	})

	t.Run("checkout", func(t *testing.T) {
		w := server.do(t, formRequest(http.MethodPost, "/order/checkout/", url.Values{
			"first_name":    {"Ann"},
			"last_name":     {"Lee"},
			"order_address": {"Main St 1"},
			"city":          {"Berlin"},
			"country":       {"Germany"},
			"postcode":      {"10115"},
			"mobile":        {"+49 30 1234"},
			"email":         {"ann@example.com"},
		}), token)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = server.do(t, httptest.NewRequest(http.MethodGet, "/order/history/", nil), token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})
}

func TestIntegration_SearchRedirect(t *testing.T) {
	server := setupIntegrationTest(t)

	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"home", "/?q=green+apple", http.StatusFound, "/store/category/?q=green+apple"},
		{"contact", "/contact/?q=apple", http.StatusFound, "/store/category/?q=apple"},
		{"cart before auth", "/order/cart/?q=apple", http.StatusFound, "/store/category/?q=apple"},
		{"listing applies q itself", "/store/category/?q=apple", http.StatusOK, ""},
		{"empty q", "/contact/?q=", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.do(t, httptest.NewRequest(http.MethodGet, tt.target, nil), "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestIntegration_HealthAndMetrics(t *testing.T) {
	server := setupIntegrationTest(t)

	w := server.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)

	server.do(t, httptest.NewRequest(http.MethodGet, "/product/999/", nil), "")

	w = server.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_http_requests_total{method="GET",path="/product/:id/",status="404"} 1`)
}
