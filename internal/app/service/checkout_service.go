package service

import (
	"context"
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// CheckoutInput is the contact and shipping snapshot stored with an order.
type CheckoutInput struct {
	FirstName     string
	LastName      string
	OrderAddress  string
	City          string
	Country       string
	Postcode      int
	Mobile        string
	Email         string
	CreateAccount bool
	OrderNotes    string
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, customerID uint, input CheckoutInput) (*model.Checkout, error)
	ListOrders(ctx context.Context, customerID uint) ([]model.Checkout, error)
}

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	cartRepo     repository.CartRepository
}

func NewCheckoutService(checkoutRepo repository.CheckoutRepository, cartRepo repository.CartRepository) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		cartRepo:     cartRepo,
	}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, customerID uint, input CheckoutInput) (*model.Checkout, error) {
	logger.Info("Placing order", map[string]interface{}{
		"customer_id": customerID,
	})

	cart, err := s.cartRepo.FindByUserID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot place order: customer has no cart", map[string]interface{}{
				"customer_id": customerID,
			})
			return nil, ErrEmptyCart
		}
		logger.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	count, err := s.cartRepo.CountItems(ctx, cart.UserID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, ErrEmptyCart
	}

	checkout := &model.Checkout{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		OrderAddress:  input.OrderAddress,
		City:          input.City,
		Country:       input.Country,
		Postcode:      input.Postcode,
		Mobile:        input.Mobile,
		Email:         input.Email,
		CreateAccount: input.CreateAccount,
		OrderNotes:    input.OrderNotes,
		CartID:        cart.UserID,
		CustomerID:    customerID,
	}
	if err := s.checkoutRepo.Create(ctx, checkout); err != nil {
		logger.Error("Failed to create checkout", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"checkout_id": checkout.ID,
		"customer_id": customerID,
		"items":       count,
	})
	return checkout, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, customerID uint) ([]model.Checkout, error) {
	orders, err := s.checkoutRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("Failed to list orders", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return orders, nil
}
