package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lineTotalExpr rounds half away from zero on both postgres and sqlite.
const lineTotalExpr = "ROUND(CAST(cart_items.quantity * products.price AS NUMERIC))"

type CartRepository interface {
	GetOrCreate(ctx context.Context, userID uint, flatRate int) (*model.Cart, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	FindItems(ctx context.Context, cartID uint) ([]model.CartItem, error)
	SumLineTotals(ctx context.Context, cartID uint) (sql.NullFloat64, error)
	CountItems(ctx context.Context, cartID uint) (int64, error)
	FindItemByID(ctx context.Context, id uint) (*model.CartItem, error)
	FindItemByProduct(ctx context.Context, cartID, productID uint) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	IncrementItemQuantity(ctx context.Context, id uint, by int) error
	DeleteItem(ctx context.Context, id uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint, flatRate int) (*model.Cart, error) {
	logger.Debug("Getting or creating cart in database", map[string]interface{}{
		"user_id":   userID,
		"flat_rate": flatRate,
	})

	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where(model.Cart{UserID: userID}).
		Attrs(model.Cart{FlatRate: flatRate}).
		FirstOrCreate(&cart).Error
	if err != nil {
		logger.Error("Failed to get or create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart ready", map[string]interface{}{
		"user_id":   cart.UserID,
		"flat_rate": cart.FlatRate,
	})
	return &cart, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItems loads the lines of a cart in insertion order with LineTotal filled.
func (r *cartRepository) FindItems(ctx context.Context, cartID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items in database", map[string]interface{}{
		"cart_id": cartID,
	})

	var items []model.CartItem
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Select("cart_items.*, "+lineTotalExpr+" AS line_total").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Preload("Product").
		Order("cart_items.id ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	logger.Debug("Cart items found in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(items),
	})
	return items, nil
}

// SumLineTotals adds up the rounded line totals. The result is invalid (NULL)
// when the cart has no lines.
func (r *cartRepository) SumLineTotals(ctx context.Context, cartID uint) (sql.NullFloat64, error) {
	var sum sql.NullFloat64
	row := r.db.WithContext(ctx).Table("cart_items").
		Select("SUM("+lineTotalExpr+")").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Row()
	if err := row.Scan(&sum); err != nil {
		logger.Error("Failed to sum cart line totals", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return sql.NullFloat64{}, err
	}

	logger.Debug("Cart line totals summed", map[string]interface{}{
		"cart_id": cartID,
		"valid":   sum.Valid,
		"sum":     sum.Float64,
	})
	return sum, nil
}

func (r *cartRepository) CountItems(ctx context.Context, cartID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
		logger.Error("Failed to count cart items", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}
	return count, nil
}

func (r *cartRepository) FindItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var item model.CartItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug("Cart item not found by ID", map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByProduct(ctx context.Context, cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Order("id ASC").
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	// A line that already exists for the product absorbs the quantity.
	err := r.db.WithContext(ctx).Omit("Cart", "Product").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(item).Error
	if err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
	})
	return nil
}

func (r *cartRepository) IncrementItemQuantity(ctx context.Context, id uint, by int) error {
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", by)).Error
	if err != nil {
		logger.Error("Failed to increment cart item quantity", err, map[string]interface{}{
			"cart_item_id": id,
			"by":           by,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}
