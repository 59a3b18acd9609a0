package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckoutForm() url.Values {
	return url.Values{
		"first_name":    {"Ann"},
		"last_name":     {"Lee"},
		"order_address": {"Main St 1"},
		"city":          {"Berlin"},
		"country":       {"Germany"},
		"postcode":      {"10115"},
		"mobile":        {"+49 30 1234"},
		"email":         {"ann@example.com"},
		"order_notes":   {"Leave at the door"},
	}
}

func TestCheckoutController_PlaceOrder(t *testing.T) {
	app := setupControllerTest(t)
	user := app.seedUser(t, "ann@example.com")
	fruit := app.seedCategory(t, "fruit", nil)
	apple := app.seedProduct(t, "apple", 2, fruit)

	app.router.POST("/order/checkout/", asCustomer(user.ID, app.checkout.PlaceOrder))
	app.router.GET("/order/history/", asCustomer(user.ID, app.checkout.ListOrders))

	t.Run("empty cart", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, postForm("/order/checkout/", validCheckoutForm()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "CART_EMPTY", decodeBody(t, w)["error"])
	})

	t.Run("invalid form", func(t *testing.T) {
		form := validCheckoutForm()
		form.Set("email", "not-an-email")
		form.Set("postcode", "0")
		form.Del("city")

		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, postForm("/order/checkout/", form))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "VALIDATION_INVALID_INPUT", body["error"])
		fields := body["fields"].(map[string]interface{})
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "postcode")
		assert.Contains(t, fields, "city")
	})

	require.NoError(t, app.db.Create(&model.Cart{UserID: user.ID, FlatRate: 10}).Error)
	require.NoError(t, app.db.Create(&model.CartItem{CartID: user.ID, ProductID: apple.ID, Quantity: 2}).Error)

	t.Run("places the order", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, postForm("/order/checkout/", validCheckoutForm()))

		assert.Equal(t, http.StatusCreated, w.Code)
		order := decodeBody(t, w)["order"].(map[string]interface{})
		assert.Equal(t, float64(10115), order["postcode"])
		assert.Equal(t, float64(user.ID), order["customer_id"])
	})

	t.Run("lists the order", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/history/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})
}

func TestCheckoutController_GetCheckout(t *testing.T) {
	app := setupControllerTest(t)
	user := app.seedUser(t, "ann@example.com")

	app.router.GET("/order/checkout/", asCustomer(user.ID, app.checkout.GetCheckout))

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/checkout/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["subtotal"])
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(10), body["flat_rate"])
}
