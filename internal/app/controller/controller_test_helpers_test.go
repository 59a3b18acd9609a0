package controller

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	db       *gorm.DB
	router   *gin.Engine
	page     *PageContext
	home     *HomeController
	listing  *ListingController
	cart     *CartController
	checkout *CheckoutController
	product  *ProductController
	review   *ReviewController
}

func setupControllerTest(t *testing.T) *testApp {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	checkoutRepo := repository.NewCheckoutRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	categoryService := service.NewCategoryService(categoryRepo, nil)
	cartService := service.NewCartService(cartRepo, productRepo, config.CartConfig{DefaultFlatRate: 10})
	listingService := service.NewListingService(productRepo, tagRepo, categoryService, nil, 6)
	productService := service.NewProductService(productRepo, nil)
	checkoutService := service.NewCheckoutService(checkoutRepo, cartRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	page := NewPageContext(cartService, categoryService)

	gin.SetMode(gin.TestMode)
	return &testApp{
		db:       testDB,
		router:   gin.New(),
		page:     page,
		home:     NewHomeController(page, reviewService),
		listing:  NewListingController(page, listingService),
		cart:     NewCartController(page, cartService),
		checkout: NewCheckoutController(page, cartService, checkoutService),
		product:  NewProductController(page, productService, categoryService, reviewService),
		review:   NewReviewController(reviewService),
	}
}

// asCustomer runs handler with the given customer signed in.
func asCustomer(userID uint, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		handler(c)
	}
}

func (a *testApp) seedUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: email}
	require.NoError(t, a.db.Create(user).Error)
	return user
}

func (a *testApp) seedCategory(t *testing.T, slug string, parent *model.Category) *model.Category {
	t.Helper()
	category := &model.Category{Name: slug, Slug: slug}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	require.NoError(t, a.db.Create(category).Error)
	return category
}

func (a *testApp) seedProduct(t *testing.T, name string, price float64, category *model.Category) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", name, category.ID),
		Price:      price,
		CategoryID: category.ID,
	}
	require.NoError(t, a.db.Create(product).Error)
	return product
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
