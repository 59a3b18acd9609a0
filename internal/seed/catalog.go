// Package seed loads a catalog workbook into the storefront database.
//
// The workbook has three sheets, each with a header row:
//
//	categories: name, slug, parent_slug
//	tags:       name
//	products:   name, slug, price, category_slug, description, tags, image_key
//
// Blank slugs are generated from the name. Product tags are a comma separated
// list of tag names. Rows are matched to existing records by slug (tags by
// name), so importing the same workbook twice is a no-op.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/ikkim/storefront-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	SheetCategories = "categories"
	SheetTags       = "tags"
	SheetProducts   = "products"
)

type CategoryRow struct {
	Line       int
	Name       string
	Slug       string
	ParentSlug string
}

type ProductRow struct {
	Line         int
	Name         string
	Slug         string
	Price        float64
	CategorySlug string
	Description  string
	Tags         []string
	ImageKey     string
}

// Catalog is the parsed content of a workbook.
type Catalog struct {
	Categories []CategoryRow
	Tags       []string
	Products   []ProductRow
}

// Stats counts what an import did per kind of record.
type Stats struct {
	CategoriesCreated int
	CategoriesSkipped int
	TagsCreated       int
	TagsSkipped       int
	ProductsCreated   int
	ProductsUpdated   int
	ProductsSkipped   int
}

// ReadCatalog parses the catalog sheets. A missing sheet is treated as empty.
func ReadCatalog(f *excelize.File) (*Catalog, error) {
	catalog := &Catalog{}

	rows, err := sheetRows(f, SheetCategories)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		catalog.Categories = append(catalog.Categories, CategoryRow{
			Line:       i + 2,
			Name:       name,
			Slug:       slugOr(cell(row, 1), name),
			ParentSlug: cell(row, 2),
		})
	}

	rows, err = sheetRows(f, SheetTags)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if name := cell(row, 0); name != "" {
			catalog.Tags = append(catalog.Tags, name)
		}
	}

	rows, err = sheetRows(f, SheetProducts)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		line := i + 2

		price, err := strconv.ParseFloat(cell(row, 2), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("%s row %d: invalid price %q", SheetProducts, line, cell(row, 2))
		}
		if cell(row, 3) == "" {
			return nil, fmt.Errorf("%s row %d: category_slug is required", SheetProducts, line)
		}

		catalog.Products = append(catalog.Products, ProductRow{
			Line:         line,
			Name:         name,
			Slug:         slugOr(cell(row, 1), name),
			Price:        price,
			CategorySlug: cell(row, 3),
			Description:  cell(row, 4),
			Tags:         splitList(cell(row, 5)),
			ImageKey:     cell(row, 6),
		})
	}

	return catalog, nil
}

// sheetRows returns the data rows of a sheet without its header.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func slugOr(slug, name string) string {
	if slug != "" {
		return slug
	}
	return util.Slugify(name)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type Importer struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	products   repository.ProductRepository

	// UpdateProducts overwrites name, price, description, image and tags of
	// products whose slug already exists instead of skipping them.
	UpdateProducts bool
}

func NewImporter(
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	products repository.ProductRepository,
) *Importer {
	return &Importer{
		categories: categories,
		tags:       tags,
		products:   products,
	}
}

// Import writes the catalog in dependency order. Category rows may only
// reference parents that exist or appear earlier in the sheet.
func (im *Importer) Import(ctx context.Context, catalog *Catalog) (Stats, error) {
	var stats Stats

	for _, row := range catalog.Categories {
		created, err := im.importCategory(ctx, row)
		if err != nil {
			return stats, err
		}
		if created {
			stats.CategoriesCreated++
		} else {
			stats.CategoriesSkipped++
		}
	}

	tags := make(map[string]model.Tag)
	for _, name := range catalog.Tags {
		tag, created, err := im.ensureTag(ctx, name)
		if err != nil {
			return stats, err
		}
		tags[name] = *tag
		if created {
			stats.TagsCreated++
		} else {
			stats.TagsSkipped++
		}
	}

	for _, row := range catalog.Products {
		var productTags []model.Tag
		for _, name := range row.Tags {
			tag, ok := tags[name]
			if !ok {
				ensured, created, err := im.ensureTag(ctx, name)
				if err != nil {
					return stats, err
				}
				if created {
					stats.TagsCreated++
				}
				tag = *ensured
				tags[name] = tag
			}
			productTags = append(productTags, tag)
		}

		outcome, err := im.importProduct(ctx, row, productTags)
		if err != nil {
			return stats, err
		}
		switch outcome {
		case outcomeCreated:
			stats.ProductsCreated++
		case outcomeUpdated:
			stats.ProductsUpdated++
		default:
			stats.ProductsSkipped++
		}
	}

	logger.Info("Catalog import finished", map[string]interface{}{
		"categories_created": stats.CategoriesCreated,
		"tags_created":       stats.TagsCreated,
		"products_created":   stats.ProductsCreated,
		"products_updated":   stats.ProductsUpdated,
		"products_skipped":   stats.ProductsSkipped,
	})
	return stats, nil
}

func (im *Importer) importCategory(ctx context.Context, row CategoryRow) (bool, error) {
	_, err := im.categories.FindBySlug(ctx, row.Slug)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	category := &model.Category{Name: row.Name, Slug: row.Slug}
	if row.ParentSlug != "" {
		parent, err := im.categories.FindBySlug(ctx, row.ParentSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, fmt.Errorf("%s row %d: unknown parent %q", SheetCategories, row.Line, row.ParentSlug)
			}
			return false, err
		}
		category.ParentID = &parent.ID
	}

	if err := im.categories.Create(ctx, category); err != nil {
		return false, fmt.Errorf("%s row %d: %w", SheetCategories, row.Line, err)
	}
	return true, nil
}

func (im *Importer) ensureTag(ctx context.Context, name string) (*model.Tag, bool, error) {
	tag, err := im.tags.FindByName(ctx, name)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	tag = &model.Tag{Name: name}
	if err := im.tags.Create(ctx, tag); err != nil {
		return nil, false, fmt.Errorf("tag %q: %w", name, err)
	}
	return tag, true, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
)

func (im *Importer) importProduct(ctx context.Context, row ProductRow, tags []model.Tag) (outcome, error) {
	category, err := im.categories.FindBySlug(ctx, row.CategorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return outcomeSkipped, fmt.Errorf("%s row %d: unknown category %q", SheetProducts, row.Line, row.CategorySlug)
		}
		return outcomeSkipped, err
	}

	existing, err := im.products.FindBySlug(ctx, row.Slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return outcomeSkipped, err
	}

	if existing != nil {
		if !im.UpdateProducts {
			return outcomeSkipped, nil
		}
		existing.Name = row.Name
		existing.Price = row.Price
		existing.Description = row.Description
		existing.ImageKey = row.ImageKey
		existing.CategoryID = category.ID
		if err := im.products.Update(ctx, existing); err != nil {
			return outcomeSkipped, fmt.Errorf("%s row %d: %w", SheetProducts, row.Line, err)
		}
		if err := im.products.ReplaceTags(ctx, existing, tags); err != nil {
			return outcomeSkipped, err
		}
		return outcomeUpdated, nil
	}

	product := &model.Product{
		Name:        row.Name,
		Slug:        row.Slug,
		Price:       row.Price,
		CategoryID:  category.ID,
		Description: row.Description,
		ImageKey:    row.ImageKey,
	}
	if err := im.products.Create(ctx, product); err != nil {
		return outcomeSkipped, fmt.Errorf("%s row %d: %w", SheetProducts, row.Line, err)
	}
	if len(tags) > 0 {
		if err := im.products.ReplaceTags(ctx, product, tags); err != nil {
			return outcomeSkipped, err
		}
	}
	return outcomeCreated, nil
}
