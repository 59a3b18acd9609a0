package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrReviewTextNeeded = errors.New("review text is required")
)

// homeReviewLimit caps the shop reviews shown on the home page.
const homeReviewLimit = 10

type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *ReviewService) ListShopReviews(ctx context.Context) ([]model.ShopReview, error) {
	reviews, err := s.reviewRepo.ListShopReviews(ctx, homeReviewLimit)
	if err != nil {
		logger.Error("Failed to list shop reviews", err)
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	reviews, err := s.reviewRepo.ListProductReviews(ctx, productID)
	if err != nil {
		logger.Error("Failed to list product reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) CreateShopReview(ctx context.Context, customerID uint, rating int, text string) (*model.ShopReview, error) {
	text, err := validateReview(rating, text)
	if err != nil {
		return nil, err
	}

	review := &model.ShopReview{UserID: customerID, Rating: rating, Text: text}
	if err := s.reviewRepo.CreateShopReview(ctx, review); err != nil {
		logger.Error("Failed to create shop review", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Shop review created", map[string]interface{}{
		"review_id":   review.ID,
		"customer_id": customerID,
		"rating":      rating,
	})
	return review, nil
}

func (s *ReviewService) CreateProductReview(ctx context.Context, customerID, productID uint, rating int, text string) (*model.ProductReview, error) {
	text, err := validateReview(rating, text)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &model.ProductReview{ProductID: productID, UserID: customerID, Rating: rating, Text: text}
	if err := s.reviewRepo.CreateProductReview(ctx, review); err != nil {
		logger.Error("Failed to create product review", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return nil, err
	}

	logger.Info("Product review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": productID,
		"rating":     rating,
	})
	return review, nil
}

func validateReview(rating int, text string) (string, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		logger.Warn("Rejected review: rating out of range", map[string]interface{}{
			"rating": rating,
		})
		return "", ErrInvalidRating
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrReviewTextNeeded
	}
	return text, nil
}
