package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

const (
	cartPath        = "/order/cart/"
	CartErrorHeader = "X-Cart-Error"
)

type CartController struct {
	page        *PageContext
	cartService service.CartService
}

func NewCartController(page *PageContext, cartService service.CartService) *CartController {
	return &CartController{
		page:        page,
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `form:"product" json:"product" binding:"required"`
	Quantity  int  `form:"product_quantity" json:"product_quantity"`
}

// GetCart renders the priced cart
// GET /order/cart/
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	customerID := middleware.CustomerID(c)

	summary, err := ctrl.cartService.GetCartSummary(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, log, err, "Cart page")
		return
	}

	data, err := ctrl.page.Base(c)
	if err != nil {
		respondServiceError(c, log, err, "Cart page")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"customer_id": customerID,
		"count":       summary.Count,
		"total":       summary.Total,
	})

	data["cartitems"] = summary.Items
	data["subtotal"] = summary.Subtotal
	data["flat_rate"] = summary.FlatRate
	data["total"] = summary.Total
	c.JSON(http.StatusOK, data)
}

// AddToCart adds a product line and sends the customer back where they came from.
// Failures are logged and reported in the X-Cart-Error header only.
// POST /order/cart/add
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	customerID := middleware.CustomerID(c)

	back := c.GetHeader("Referer")
	if back == "" {
		back = cartPath
	}

	var req AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		c.Header(CartErrorHeader, apperrors.ValidationInvalidInput)
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	err := ctrl.cartService.AddItem(c.Request.Context(), customerID, req.ProductID, req.Quantity)
	if err != nil {
		code := apperrors.InternalServerError
		if mapped, ok := lookupServiceError(err); ok {
			code = mapped.code
			log.Warn("Add to cart rejected", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  req.ProductID,
				"quantity":    req.Quantity,
				"code":        code,
			})
		} else {
			log.Error("Failed to add to cart", err, map[string]interface{}{
				"customer_id": customerID,
				"product_id":  req.ProductID,
			})
		}
		c.Header(CartErrorHeader, code)
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  req.ProductID,
		"quantity":    req.Quantity,
	})
	c.Redirect(http.StatusSeeOther, back)
}

// RemoveItem deletes a cart line
// POST|DELETE /order/cart/item/:id/delete
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(c.Request.Context(), middleware.CustomerID(c), itemID); err != nil {
		respondServiceError(c, log, err, "Remove cart item")
		return
	}

	c.Redirect(http.StatusSeeOther, cartPath)
}
