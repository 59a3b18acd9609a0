package repository

import (
	"context"
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createCategory(t *testing.T, testDB *gorm.DB, slug string, parent *model.Category) *model.Category {
	t.Helper()
	category := &model.Category{Name: slug, Slug: slug}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func createProduct(t *testing.T, testDB *gorm.DB, name string, price float64, category *model.Category) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Slug: name, Price: price, CategoryID: category.ID}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCategoryRepository_FindRoots(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)

	fruit := createCategory(t, testDB, "fruit", nil)
	createCategory(t, testDB, "citrus", fruit)
	createCategory(t, testDB, "vegetables", nil)

	roots, err := repo.FindRoots(context.Background())
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "fruit", roots[0].Slug)
	assert.Equal(t, "vegetables", roots[1].Slug)
}

func TestCategoryRepository_FindBySlug_NotFound(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)

	_, err := repo.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepository_FindDescendantIDs(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	fruit := createCategory(t, testDB, "fruit", nil)
	citrus := createCategory(t, testDB, "citrus", fruit)
	lemons := createCategory(t, testDB, "lemons", citrus)
	createCategory(t, testDB, "vegetables", nil)

	ids, err := repo.FindDescendantIDs(ctx, fruit.ID, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{fruit.ID, citrus.ID, lemons.ID}, ids)

	ids, err = repo.FindDescendantIDs(ctx, fruit.ID, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{citrus.ID, lemons.ID}, ids)

	descendants, err := repo.FindDescendants(ctx, fruit.ID)
	require.NoError(t, err)
	require.Len(t, descendants, 2)
	assert.Equal(t, "citrus", descendants[0].Slug)
	assert.Equal(t, "lemons", descendants[1].Slug)

	leaf, err := repo.FindDescendants(ctx, lemons.ID)
	require.NoError(t, err)
	assert.Empty(t, leaf)
}

func TestCategoryRepository_FindDescendantIDs_ParentCycleTerminates(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)

	fruit := createCategory(t, testDB, "fruit", nil)
	citrus := createCategory(t, testDB, "citrus", fruit)
	require.NoError(t, testDB.Model(&model.Category{}).
		Where("id = ?", fruit.ID).
		Update("parent_id", citrus.ID).Error)

	ids, err := repo.FindDescendantIDs(context.Background(), fruit.ID, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{fruit.ID, citrus.ID}, ids)

	ids, err = repo.FindDescendantIDs(context.Background(), fruit.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []uint{citrus.ID}, ids)
}

func TestCategoryRepository_CountProductsShallow(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)

	fruit := createCategory(t, testDB, "fruit", nil)
	citrus := createCategory(t, testDB, "citrus", fruit)
	lemons := createCategory(t, testDB, "lemons", citrus)
	empty := createCategory(t, testDB, "empty", nil)

	createProduct(t, testDB, "apple", 1, fruit)
	createProduct(t, testDB, "pear", 2, fruit)
	createProduct(t, testDB, "orange", 3, citrus)
	createProduct(t, testDB, "lime", 4, citrus)
	createProduct(t, testDB, "mandarin", 5, citrus)
	createProduct(t, testDB, "meyer", 6, lemons)

	counts, err := repo.CountProductsShallow(context.Background(), []uint{fruit.ID, citrus.ID, empty.ID})
	require.NoError(t, err)

	// fruit: 2 direct + 3 in citrus; the lemon grandchild is not counted.
	assert.Equal(t, int64(5), counts[fruit.ID])
	assert.Equal(t, int64(4), counts[citrus.ID])
	assert.Equal(t, int64(0), counts[empty.ID])
}

func TestCategoryRepository_CountProductsShallow_NoIDs(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)

	counts, err := repo.CountProductsShallow(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
