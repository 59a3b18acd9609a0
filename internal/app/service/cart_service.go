package service

import (
	"context"
	"errors"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// CartSummary is the priced view of a cart. Subtotal is the sum of the
// per-line rounded totals; Total adds the flat rate unless the cart is empty.
type CartSummary struct {
	Items    []model.CartItem `json:"items"`
	Subtotal float64          `json:"subtotal"`
	FlatRate int              `json:"flat_rate"`
	Total    float64          `json:"total"`
	Count    int              `json:"count"`
}

type CartService interface {
	GetCartSummary(ctx context.Context, customerID uint) (*CartSummary, error)
	CountItems(ctx context.Context, customerID uint) (int64, error)
	AddItem(ctx context.Context, customerID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, customerID, itemID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cfg         config.CartConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cfg config.CartConfig,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cfg:         cfg,
	}
}

func (s *cartService) GetCartSummary(ctx context.Context, customerID uint) (*CartSummary, error) {
	logger.Debug("Computing cart summary", map[string]interface{}{
		"customer_id": customerID,
	})

	cart, err := s.cartRepo.GetOrCreate(ctx, customerID, s.cfg.DefaultFlatRate)
	if err != nil {
		logger.Error("Failed to load cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	items, err := s.cartRepo.FindItems(ctx, cart.UserID)
	if err != nil {
		logger.Error("Failed to load cart items", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	sum, err := s.cartRepo.SumLineTotals(ctx, cart.UserID)
	if err != nil {
		logger.Error("Failed to total cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	summary := &CartSummary{
		Items:    items,
		FlatRate: cart.FlatRate,
		Count:    len(items),
	}
	// An empty cart owes nothing, shipping included.
	if sum.Valid {
		summary.Subtotal = sum.Float64
		summary.Total = sum.Float64 + float64(cart.FlatRate)
	}

	logger.Info("Cart summary computed", map[string]interface{}{
		"customer_id": customerID,
		"items":       summary.Count,
		"subtotal":    summary.Subtotal,
		"total":       summary.Total,
	})
	return summary, nil
}

// CountItems returns the number of lines in the customer's cart, 0 for guests.
func (s *cartService) CountItems(ctx context.Context, customerID uint) (int64, error) {
	if customerID == 0 {
		return 0, nil
	}

	count, err := s.cartRepo.CountItems(ctx, customerID)
	if err != nil {
		logger.Error("Failed to count cart items", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return 0, err
	}
	return count, nil
}

func (s *cartService) AddItem(ctx context.Context, customerID, productID uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"quantity":    quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"customer_id": customerID,
			"quantity":    quantity,
		})
		return ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"customer_id": customerID,
				"product_id":  productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, customerID, s.cfg.DefaultFlatRate)
	if err != nil {
		logger.Error("Failed to load cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return err
	}

	existing, err := s.cartRepo.FindItemByProduct(ctx, cart.UserID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}

	if existing != nil {
		logger.Debug("Incrementing existing cart item", map[string]interface{}{
			"cart_item_id": existing.ID,
			"old_qty":      existing.Quantity,
			"by":           quantity,
		})
		return s.cartRepo.IncrementItemQuantity(ctx, existing.ID, quantity)
	}

	item := &model.CartItem{
		CartID:    cart.UserID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.CreateItem(ctx, item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"customer_id":  customerID,
		"cart_item_id": itemID,
	})

	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for removal", map[string]interface{}{
				"cart_item_id": itemID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item for removal", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return err
	}

	if item.CartID != customerID {
		logger.Warn("Cart item belongs to another customer", map[string]interface{}{
			"customer_id":  customerID,
			"cart_item_id": itemID,
			"owner_id":     item.CartID,
			"enforced":     s.cfg.EnforceItemOwnership,
		})
		if s.cfg.EnforceItemOwnership {
			return ErrCartItemNotFound
		}
	}

	if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": itemID,
	})
	return nil
}
