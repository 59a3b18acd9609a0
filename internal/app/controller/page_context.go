package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

// PageContext builds the fields every storefront page carries: the header
// cart counter and the root categories of the navigation menu.
type PageContext struct {
	cartService     service.CartService
	categoryService service.CategoryService
}

func NewPageContext(cartService service.CartService, categoryService service.CategoryService) *PageContext {
	return &PageContext{
		cartService:     cartService,
		categoryService: categoryService,
	}
}

// Base returns cart_count and categories_root for the current customer.
func (p *PageContext) Base(c *gin.Context) (gin.H, error) {
	ctx := c.Request.Context()

	count, err := p.cartService.CountItems(ctx, middleware.CustomerID(c))
	if err != nil {
		return nil, err
	}

	roots, err := p.categoryService.RootCategories(ctx)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"cart_count":      count,
		"categories_root": roots,
	}, nil
}

// CartCount returns only the header counter.
func (p *PageContext) CartCount(c *gin.Context) (int64, error) {
	return p.cartService.CountItems(c.Request.Context(), middleware.CustomerID(c))
}
