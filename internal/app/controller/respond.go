package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

type serviceError struct {
	status  int
	code    string
	message string
}

var serviceErrors = map[error]serviceError{
	service.ErrInvalidFilter:    {http.StatusBadRequest, apperrors.CatalogInvalidFilter, "Invalid filter value"},
	service.ErrPageNotFound:     {http.StatusNotFound, apperrors.CatalogPageNotFound, "This page does not exist"},
	service.ErrCategoryNotFound: {http.StatusNotFound, apperrors.CatalogCategoryNotFound, "Category not found"},
	service.ErrProductNotFound:  {http.StatusNotFound, apperrors.CatalogProductNotFound, "Product not found"},
	service.ErrCartItemNotFound: {http.StatusNotFound, apperrors.CartItemNotFound, "Cart item not found"},
	service.ErrInvalidQuantity:  {http.StatusBadRequest, apperrors.CartInvalidQuantity, "Quantity must be at least 1"},
	service.ErrEmptyCart:        {http.StatusBadRequest, apperrors.CartEmpty, "Your cart is empty"},
	service.ErrInvalidRating:    {http.StatusBadRequest, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5"},
	service.ErrReviewTextNeeded: {http.StatusBadRequest, apperrors.ReviewTextRequired, "Review text is required"},
}

// lookupServiceError maps a sentinel error to its HTTP status and error code.
func lookupServiceError(err error) (serviceError, bool) {
	for sentinel, mapped := range serviceErrors {
		if errors.Is(err, sentinel) {
			return mapped, true
		}
	}
	return serviceError{}, false
}

// respondServiceError writes the mapped response, or a 500 for unknown errors.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, action string) {
	if mapped, ok := lookupServiceError(err); ok {
		log.Warn(action+" rejected", map[string]interface{}{
			"error": err.Error(),
			"code":  mapped.code,
		})
		apperrors.RespondWithError(c, mapped.status, mapped.code, mapped.message)
		return
	}

	log.Error(action+" failed", err)
	apperrors.InternalError(c, "")
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
