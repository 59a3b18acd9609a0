package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// likeEscaper makes LIKE metacharacters in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProductSort string

const (
	ProductSortDefault ProductSort = ""
	ProductSortPrice   ProductSort = "price"
)

// ProductFilter narrows a listing. Every set field must match.
type ProductFilter struct {
	Search      string
	MaxPrice    *float64
	TagID       *uint
	CategoryIDs []uint // nil means any category
	SortBy      ProductSort
	Limit       int
	Offset      int
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindWithFilter(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	ReplaceTags(ctx context.Context, product *model.Product, tags []model.Tag) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"category_id": product.CategoryID,
	})

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"slug":        product.Slug,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", likeEscaper.Replace(strings.ToLower(filter.Search)))
		query = query.Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, like)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.TagID != nil {
		tagged := r.db.Table("product_tags").Select("product_id").Where("tag_id = ?", *filter.TagID)
		query = query.Where("products.id IN (?)", tagged)
	}
	if filter.CategoryIDs != nil {
		query = query.Where("products.category_id IN ?", filter.CategoryIDs)
	}
	return query
}

// FindWithFilter returns one page of matching products and the total number of matches.
func (r *productRepository) FindWithFilter(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"search":       filter.Search,
		"max_price":    filter.MaxPrice,
		"tag_id":       filter.TagID,
		"category_ids": len(filter.CategoryIDs),
		"sort_by":      filter.SortBy,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&model.Product{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Product{}), filter).
		Preload("Category").
		Preload("Tags")

	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price ASC").Order("products.id ASC")
	default:
		query = query.Order("products.id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		logger.Debug("Product not found by slug", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.WithContext(ctx).Omit("Category", "Tags").Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) ReplaceTags(ctx context.Context, product *model.Product, tags []model.Tag) error {
	association := r.db.WithContext(ctx).Model(product).Association("Tags")

	var err error
	if len(tags) == 0 {
		err = association.Clear()
	} else {
		err = association.Replace(tags)
	}
	if err != nil {
		logger.Error("Failed to replace product tags", err, map[string]interface{}{
			"product_id": product.ID,
			"tags":       len(tags),
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.WithContext(ctx).Select("Tags").Delete(&model.Product{ID: id}).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
