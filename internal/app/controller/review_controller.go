package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// CreateShopReview posts a review of the shop itself
// POST /reviews
func (ctrl *ReviewController) CreateShopReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review")
		return
	}

	review, err := ctrl.reviewService.CreateShopReview(c.Request.Context(), middleware.CustomerID(c), req.Rating, req.Text)
	if err != nil {
		respondServiceError(c, log, err, "Create shop review")
		return
	}

	log.Info("Shop review created", map[string]interface{}{
		"review_id": review.ID,
		"rating":    review.Rating,
	})
	c.JSON(http.StatusCreated, review)
}
