package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type ListingController struct {
	page           *PageContext
	listingService service.ListingService
}

func NewListingController(page *PageContext, listingService service.ListingService) *ListingController {
	return &ListingController{
		page:           page,
		listingService: listingService,
	}
}

// List renders the shop listing, optionally narrowed to a category subtree
// GET /store/category/
// GET /store/category/:slug/
func (ctrl *ListingController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := service.ProductListFilter{
		CategorySlug: c.Param("slug"),
		Query:        c.Query("q"),
		MaxPrice:     c.Query("p"),
		Tag:          c.Query("t"),
		Sort:         c.Query("fruitlist"),
		Page:         c.Query("page"),
	}

	result, err := ctrl.listingService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, log, err, "Product listing")
		return
	}

	data, err := ctrl.page.Base(c)
	if err != nil {
		respondServiceError(c, log, err, "Product listing")
		return
	}

	// Query parameters are echoed back so pagination links keep the filters.
	params := make(map[string]string, len(c.Request.URL.Query()))
	for key := range c.Request.URL.Query() {
		if key != "page" {
			params[key] = c.Query(key)
		}
	}

	data["products"] = result.Page.Products
	data["page"] = gin.H{
		"number":       result.Page.Number,
		"num_pages":    result.Page.NumPages,
		"total":        result.Page.Total,
		"page_size":    result.Page.PageSize,
		"has_next":     result.Page.HasNext,
		"has_previous": result.Page.HasPrevious,
	}
	data["categories"] = result.Facets
	data["product_tags"] = result.Tags
	data["get_param"] = params

	c.JSON(http.StatusOK, data)
}
