package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type CheckoutController struct {
	page            *PageContext
	cartService     service.CartService
	checkoutService service.CheckoutService
}

func NewCheckoutController(
	page *PageContext,
	cartService service.CartService,
	checkoutService service.CheckoutService,
) *CheckoutController {
	return &CheckoutController{
		page:            page,
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

type CheckoutRequest struct {
	FirstName     string `form:"first_name" json:"first_name" binding:"required,max=100"`
	LastName      string `form:"last_name" json:"last_name" binding:"required,max=100"`
	OrderAddress  string `form:"order_address" json:"order_address" binding:"required,max=100"`
	City          string `form:"city" json:"city" binding:"required,max=100"`
	Country       string `form:"country" json:"country" binding:"required,max=100"`
	Postcode      int    `form:"postcode" json:"postcode" binding:"gt=0"`
	Mobile        string `form:"mobile" json:"mobile" binding:"required,max=100"`
	Email         string `form:"email" json:"email" binding:"required,email,max=100"`
	CreateAccount bool   `form:"create_account" json:"create_account"`
	OrderNotes    string `form:"order_notes" json:"order_notes"`
}

// GetCheckout renders the checkout page with the cart summary
// GET /order/checkout/
func (ctrl *CheckoutController) GetCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	summary, err := ctrl.cartService.GetCartSummary(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondServiceError(c, log, err, "Checkout page")
		return
	}

	data, err := ctrl.page.Base(c)
	if err != nil {
		respondServiceError(c, log, err, "Checkout page")
		return
	}

	data["cartitems"] = summary.Items
	data["subtotal"] = summary.Subtotal
	data["flat_rate"] = summary.FlatRate
	data["total"] = summary.Total
	c.JSON(http.StatusOK, data)
}

// PlaceOrder stores the checkout form as an order
// POST /order/checkout/
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	customerID := middleware.CustomerID(c)

	var req CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid checkout form", map[string]interface{}{
			"customer_id": customerID,
			"error":       err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.FieldErrors(err))
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(c.Request.Context(), customerID, service.CheckoutInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		OrderAddress:  req.OrderAddress,
		City:          req.City,
		Country:       req.Country,
		Postcode:      req.Postcode,
		Mobile:        req.Mobile,
		Email:         req.Email,
		CreateAccount: req.CreateAccount,
		OrderNotes:    req.OrderNotes,
	})
	if err != nil {
		respondServiceError(c, log, err, "Place order")
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"customer_id": customerID,
		"checkout_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns the customer's orders, newest first
// GET /order/history/
func (ctrl *CheckoutController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.checkoutService.ListOrders(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondServiceError(c, log, err, "List orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
