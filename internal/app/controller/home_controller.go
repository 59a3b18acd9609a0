package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type HomeController struct {
	page          *PageContext
	reviewService *service.ReviewService
}

func NewHomeController(page *PageContext, reviewService *service.ReviewService) *HomeController {
	return &HomeController{
		page:          page,
		reviewService: reviewService,
	}
}

// Home renders the landing page with shop reviews
// GET /
func (ctrl *HomeController) Home(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.page.Base(c)
	if err != nil {
		respondServiceError(c, log, err, "Home page")
		return
	}

	reviews, err := ctrl.reviewService.ListShopReviews(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err, "Home page")
		return
	}
	data["reviews"] = reviews

	c.JSON(http.StatusOK, data)
}

// Contact renders the contact page
// GET /contact/
func (ctrl *HomeController) Contact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.page.Base(c)
	if err != nil {
		respondServiceError(c, log, err, "Contact page")
		return
	}

	c.JSON(http.StatusOK, data)
}
