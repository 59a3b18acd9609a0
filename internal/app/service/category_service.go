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
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryService interface {
	RootCategories(ctx context.Context) ([]model.Category, error)
	RootFacets(ctx context.Context) ([]model.CategoryFacet, error)
	SubtreeFacets(ctx context.Context, slug string) ([]model.CategoryFacet, error)
	SubtreeIDs(ctx context.Context, slug string) ([]uint, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        NavigationCache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cache NavigationCache) CategoryService {
	if cache == nil {
		cache = NewNoopNavigationCache()
	}
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *categoryService) RootCategories(ctx context.Context) ([]model.Category, error) {
	if roots, ok := s.cache.GetRoots(ctx); ok {
		logger.Debug("Root categories served from cache", map[string]interface{}{
			"count": len(roots),
		})
		return roots, nil
	}

	roots, err := s.categoryRepo.FindRoots(ctx)
	if err != nil {
		logger.Error("Failed to load root categories", err)
		return nil, err
	}

	s.cache.SetRoots(ctx, roots)
	return roots, nil
}

func (s *categoryService) RootFacets(ctx context.Context) ([]model.CategoryFacet, error) {
	roots, err := s.RootCategories(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, roots)
}

func (s *categoryService) SubtreeFacets(ctx context.Context, slug string) ([]model.CategoryFacet, error) {
	category, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	descendants, err := s.categoryRepo.FindDescendants(ctx, category.ID)
	if err != nil {
		logger.Error("Failed to load category descendants", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return s.annotate(ctx, descendants)
}

// SubtreeIDs returns the ids of the named category and everything below it.
func (s *categoryService) SubtreeIDs(ctx context.Context, slug string) ([]uint, error) {
	category, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ids, err := s.categoryRepo.FindDescendantIDs(ctx, category.ID, true)
	if err != nil {
		logger.Error("Failed to load category subtree", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return ids, nil
}

func (s *categoryService) findBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	return category, nil
}

func (s *categoryService) annotate(ctx context.Context, categories []model.Category) ([]model.CategoryFacet, error) {
	ids := make([]uint, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	counts, err := s.categoryRepo.CountProductsShallow(ctx, ids)
	if err != nil {
		logger.Error("Failed to count category products", err, map[string]interface{}{
			"categories": len(ids),
		})
		return nil, err
	}

	facets := make([]model.CategoryFacet, len(categories))
	for i, c := range categories {
		facets[i] = model.CategoryFacet{Category: c, Count: counts[c.ID]}
	}
	return facets, nil
}
