package service

import (
	"context"
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/storage"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductService interface {
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	images      storage.ImageURLResolver
}

func NewProductService(productRepo repository.ProductRepository, images storage.ImageURLResolver) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
	}
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	resolveImageURLs(ctx, s.images, []*model.Product{product})
	return product, nil
}

// resolveImageURLs fills ImageURL from ImageKey. A failed lookup leaves it empty.
func resolveImageURLs(ctx context.Context, images storage.ImageURLResolver, products []*model.Product) {
	if images == nil {
		return
	}
	for _, p := range products {
		url, err := images.ImageURL(ctx, p.ImageKey)
		if err != nil {
			logger.Warn("Failed to resolve product image", map[string]interface{}{
				"product_id": p.ID,
				"error":      err.Error(),
			})
			continue
		}
		p.ImageURL = url
	}
}
