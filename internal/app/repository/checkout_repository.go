package repository

import (
	"context"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CheckoutRepository interface {
	Create(ctx context.Context, checkout *model.Checkout) error
	FindByCustomerID(ctx context.Context, customerID uint) ([]model.Checkout, error)
}

type checkoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(ctx context.Context, checkout *model.Checkout) error {
	logger.Debug("Creating checkout in database", map[string]interface{}{
		"customer_id": checkout.CustomerID,
		"cart_id":     checkout.CartID,
	})

	if err := r.db.WithContext(ctx).Omit("Cart", "Customer").Create(checkout).Error; err != nil {
		logger.Error("Failed to create checkout in database", err, map[string]interface{}{
			"customer_id": checkout.CustomerID,
			"cart_id":     checkout.CartID,
		})
		return err
	}

	logger.Debug("Checkout created in database", map[string]interface{}{
		"checkout_id": checkout.ID,
		"customer_id": checkout.CustomerID,
		"order_date":  checkout.OrderDate,
	})
	return nil
}

func (r *checkoutRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]model.Checkout, error) {
	logger.Debug("Finding checkouts by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
	})

	var checkouts []model.Checkout
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_date DESC, id DESC").
		Find(&checkouts).Error
	if err != nil {
		logger.Error("Failed to find checkouts by customer ID in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Debug("Checkouts found by customer ID in database", map[string]interface{}{
		"customer_id": customerID,
		"count":       len(checkouts),
	})
	return checkouts, nil
}
