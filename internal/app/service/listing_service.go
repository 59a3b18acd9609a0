package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/storage"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

var (
	ErrInvalidFilter = errors.New("invalid listing filter")
	ErrPageNotFound  = errors.New("page not found")
)

// SortByPrice is the fruitlist value that orders the listing by ascending price.
const SortByPrice = "2"

// ProductListFilter carries the raw listing query parameters.
type ProductListFilter struct {
	CategorySlug string
	Query        string // q
	MaxPrice     string // p
	Tag          string // t
	Sort         string // fruitlist
	Page         string
}

type ProductPage struct {
	Products    []model.Product `json:"products"`
	Number      int             `json:"number"`
	NumPages    int             `json:"num_pages"`
	Total       int64           `json:"total"`
	PageSize    int             `json:"page_size"`
	HasNext     bool            `json:"has_next"`
	HasPrevious bool            `json:"has_previous"`
}

type ListingResult struct {
	Page   ProductPage           `json:"page"`
	Facets []model.CategoryFacet `json:"categories"`
	Tags   []model.Tag           `json:"product_tags"`
}

type ListingService interface {
	ListProducts(ctx context.Context, filter ProductListFilter) (*ListingResult, error)
}

type listingService struct {
	productRepo repository.ProductRepository
	tagRepo     repository.TagRepository
	categories  CategoryService
	images      storage.ImageURLResolver
	pageSize    int
}

func NewListingService(
	productRepo repository.ProductRepository,
	tagRepo repository.TagRepository,
	categories CategoryService,
	images storage.ImageURLResolver,
	pageSize int,
) ListingService {
	return &listingService{
		productRepo: productRepo,
		tagRepo:     tagRepo,
		categories:  categories,
		images:      images,
		pageSize:    pageSize,
	}
}

func (s *listingService) ListProducts(ctx context.Context, filter ProductListFilter) (*ListingResult, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"slug":      filter.CategorySlug,
		"q":         filter.Query,
		"p":         filter.MaxPrice,
		"t":         filter.Tag,
		"fruitlist": filter.Sort,
		"page":      filter.Page,
	})

	repoFilter, page, err := s.parseFilter(filter)
	if err != nil {
		return nil, err
	}

	var facets []model.CategoryFacet
	if filter.CategorySlug != "" {
		ids, err := s.categories.SubtreeIDs(ctx, filter.CategorySlug)
		if err != nil {
			return nil, err
		}
		repoFilter.CategoryIDs = ids

		facets, err = s.categories.SubtreeFacets(ctx, filter.CategorySlug)
		if err != nil {
			return nil, err
		}
	} else {
		facets, err = s.categories.RootFacets(ctx)
		if err != nil {
			return nil, err
		}
	}

	repoFilter.Limit = s.pageSize
	repoFilter.Offset = (page - 1) * s.pageSize

	products, total, err := s.productRepo.FindWithFilter(ctx, repoFilter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	numPages := int(math.Ceil(float64(total) / float64(s.pageSize)))
	if numPages < 1 {
		numPages = 1
	}
	if page > numPages {
		logger.Warn("Listing page out of range", map[string]interface{}{
			"page":      page,
			"num_pages": numPages,
		})
		return nil, ErrPageNotFound
	}

	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to list tags", err)
		return nil, err
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	resolveImageURLs(ctx, s.images, refs)

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
		"total": total,
		"page":  page,
	})

	return &ListingResult{
		Page: ProductPage{
			Products:    products,
			Number:      page,
			NumPages:    numPages,
			Total:       total,
			PageSize:    s.pageSize,
			HasNext:     page < numPages,
			HasPrevious: page > 1,
		},
		Facets: facets,
		Tags:   tags,
	}, nil
}

func (s *listingService) parseFilter(filter ProductListFilter) (repository.ProductFilter, int, error) {
	repoFilter := repository.ProductFilter{
		Search: strings.TrimSpace(filter.Query),
	}

	if filter.MaxPrice != "" {
		price, err := strconv.ParseFloat(filter.MaxPrice, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			logger.Warn("Invalid max price filter", map[string]interface{}{
				"p": filter.MaxPrice,
			})
			return repoFilter, 0, ErrInvalidFilter
		}
		repoFilter.MaxPrice = &price
	}

	if filter.Tag != "" {
		tagID, err := strconv.ParseUint(filter.Tag, 10, 0)
		if err != nil || tagID == 0 {
			logger.Warn("Invalid tag filter", map[string]interface{}{
				"t": filter.Tag,
			})
			return repoFilter, 0, ErrInvalidFilter
		}
		id := uint(tagID)
		repoFilter.TagID = &id
	}

	if filter.Sort == SortByPrice {
		repoFilter.SortBy = repository.ProductSortPrice
	}

	page := 1
	if filter.Page != "" {
		n, err := strconv.Atoi(filter.Page)
		if err != nil || n < 1 {
			logger.Warn("Invalid page number", map[string]interface{}{
				"page": filter.Page,
			})
			return repoFilter, 0, ErrInvalidFilter
		}
		page = n
	}

	return repoFilter, page, nil
}
