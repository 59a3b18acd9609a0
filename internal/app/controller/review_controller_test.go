package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewController_CreateShopReview(t *testing.T) {
	app := setupControllerTest(t)
	user := app.seedUser(t, "ann@example.com")

	app.router.POST("/reviews", asCustomer(user.ID, app.review.CreateShopReview))

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, postForm("/reviews", url.Values{"rating": {"5"}, "text": {"  Lovely shop  "}}))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Lovely shop", body["text"])
	assert.Equal(t, float64(5), body["rating"])

	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, postForm("/reviews", url.Values{"rating": {"0"}, "text": {"Meh"}}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REVIEW_INVALID_RATING", decodeBody(t, w)["error"])
}
