package repository

import (
	"context"

	"github.com/ikkim/storefront-backend/internal/app/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListShopReviews returns shop reviews newest first.
func (r *ReviewRepository) ListShopReviews(ctx context.Context, limit int) ([]model.ShopReview, error) {
	var reviews []model.ShopReview
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListProductReviews returns the reviews of one product newest first.
func (r *ReviewRepository) ListProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) CreateShopReview(ctx context.Context, review *model.ShopReview) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *ReviewRepository) CreateProductReview(ctx context.Context, review *model.ProductReview) error {
	return r.db.WithContext(ctx).Omit("User", "Product").Create(review).Error
}
