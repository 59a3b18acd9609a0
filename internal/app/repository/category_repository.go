package repository

import (
	"context"
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// subtreeCTE walks parent links downward from a single category id.
// UNION drops rows already visited, so a parent cycle still terminates.
const subtreeCTE = `WITH RECURSIVE subtree(id) AS (
	SELECT id FROM categories WHERE id = ?
	UNION
	SELECT c.id FROM categories c JOIN subtree s ON c.parent_id = s.id
)
SELECT id FROM subtree`

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindRoots(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindDescendantIDs(ctx context.Context, id uint, includeSelf bool) ([]uint, error)
	FindDescendants(ctx context.Context, id uint) ([]model.Category, error)
	CountProductsShallow(ctx context.Context, ids []uint) (map[uint]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name":      category.Name,
		"slug":      category.Slug,
		"parent_id": category.ParentID,
	})

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	return nil
}

func (r *categoryRepository) FindRoots(ctx context.Context) ([]model.Category, error) {
	logger.Debug("Finding root categories in database")

	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		logger.Error("Failed to find root categories in database", err)
		return nil, err
	}

	logger.Debug("Root categories found in database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	logger.Debug("Finding category by slug in database", map[string]interface{}{
		"slug": slug,
	})

	var category model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug("Category not found by slug", map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	if err != nil {
		logger.Error("Failed to find category by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	logger.Debug("Category found by slug in database", map[string]interface{}{
		"category_id": category.ID,
		"slug":        slug,
	})
	return &category, nil
}

func (r *categoryRepository) FindDescendantIDs(ctx context.Context, id uint, includeSelf bool) ([]uint, error) {
	logger.Debug("Finding category subtree in database", map[string]interface{}{
		"category_id":  id,
		"include_self": includeSelf,
	})

	var ids []uint
	if err := r.db.WithContext(ctx).Raw(subtreeCTE, id).Scan(&ids).Error; err != nil {
		logger.Error("Failed to find category subtree in database", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	if !includeSelf {
		filtered := ids[:0]
		for _, candidate := range ids {
			if candidate != id {
				filtered = append(filtered, candidate)
			}
		}
		ids = filtered
	}

	logger.Debug("Category subtree found in database", map[string]interface{}{
		"category_id": id,
		"count":       len(ids),
	})
	return ids, nil
}

func (r *categoryRepository) FindDescendants(ctx context.Context, id uint) ([]model.Category, error) {
	ids, err := r.FindDescendantIDs(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Category{}, nil
	}

	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to load descendant categories", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}
	return categories, nil
}

// CountProductsShallow counts, per category, the products placed directly in it
// plus those placed directly in its immediate children. Grandchildren are not
// counted, so the number can be lower than the size of the filtered listing.
func (r *categoryRepository) CountProductsShallow(ctx context.Context, ids []uint) (map[uint]int64, error) {
	logger.Debug("Counting products per category", map[string]interface{}{
		"category_ids": ids,
	})

	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	type row struct {
		ID    uint
		Count int64
	}

	direct := r.db.Table("products").
		Select("category_id, COUNT(*) AS cnt").
		Group("category_id")
	viaChild := r.db.Table("products").
		Select("categories.parent_id AS category_id, COUNT(*) AS cnt").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.parent_id IS NOT NULL").
		Group("categories.parent_id")

	var rows []row
	err := r.db.WithContext(ctx).Table("categories").
		Select("categories.id AS id, COALESCE(direct.cnt, 0) + COALESCE(via_child.cnt, 0) AS count").
		Joins("LEFT JOIN (?) AS direct ON direct.category_id = categories.id", direct).
		Joins("LEFT JOIN (?) AS via_child ON via_child.category_id = categories.id", viaChild).
		Where("categories.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count products per category", err, map[string]interface{}{
			"category_ids": ids,
		})
		return nil, err
	}

	for _, id := range ids {
		counts[id] = 0
	}
	for _, rw := range rows {
		counts[rw.ID] = rw.Count
	}

	logger.Debug("Counted products per category", map[string]interface{}{
		"categories": len(counts),
	})
	return counts, nil
}
