package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type ProductController struct {
	page            *PageContext
	productService  service.ProductService
	categoryService service.CategoryService
	reviewService   *service.ReviewService
}

func NewProductController(
	page *PageContext,
	productService service.ProductService,
	categoryService service.CategoryService,
	reviewService *service.ReviewService,
) *ProductController {
	return &ProductController{
		page:            page,
		productService:  productService,
		categoryService: categoryService,
		reviewService:   reviewService,
	}
}

type ReviewRequest struct {
	Rating int    `form:"rating" json:"rating"`
	Text   string `form:"text" json:"text"`
}

// GetProductDetail renders a single product with its reviews
// GET /product/:id/
func (ctrl *ProductController) GetProductDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.GetProduct(ctx, id)
	if err != nil {
		respondServiceError(c, log, err, "Product detail")
		return
	}

	reviews, err := ctrl.reviewService.ListProductReviews(ctx, id)
	if err != nil {
		respondServiceError(c, log, err, "Product detail")
		return
	}

	// The detail page shows root categories with their product counts.
	roots, err := ctrl.categoryService.RootFacets(ctx)
	if err != nil {
		respondServiceError(c, log, err, "Product detail")
		return
	}

	count, err := ctrl.page.CartCount(c)
	if err != nil {
		respondServiceError(c, log, err, "Product detail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":         product,
		"reviews":         reviews,
		"quantity":        1,
		"categories_root": roots,
		"cart_count":      count,
	})
}

// CreateProductReview posts a review on a product
// POST /product/:id/reviews
func (ctrl *ProductController) CreateProductReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review")
		return
	}

	review, err := ctrl.reviewService.CreateProductReview(c.Request.Context(), middleware.CustomerID(c), id, req.Rating, req.Text)
	if err != nil {
		respondServiceError(c, log, err, "Create product review")
		return
	}

	c.JSON(http.StatusCreated, review)
}
