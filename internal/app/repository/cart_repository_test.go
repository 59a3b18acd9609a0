package repository

import (
	"context"
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.Cart) {
	t.Helper()
	testDB := setupRepoTest(t)
	repo := NewCartRepository(testDB)

	user := &model.User{Email: "customer@example.com", Name: "Customer"}
	require.NoError(t, testDB.Create(user).Error)

	cart, err := repo.GetOrCreate(context.Background(), user.ID, 10)
	require.NoError(t, err)
	return testDB, repo, cart
}

func TestCartRepository_GetOrCreate_IsIdempotent(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)

	again, err := repo.GetOrCreate(context.Background(), cart.UserID, 99)
	require.NoError(t, err)
	assert.Equal(t, 10, again.FlatRate)

	var count int64
	testDB.Model(&model.Cart{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCartRepository_LineTotalsRoundPerLine(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()
	fruit := createCategory(t, testDB, "fruit", nil)
	a := createProduct(t, testDB, "a", 3.3, fruit)
	b := createProduct(t, testDB, "b", 5, fruit)

	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: a.ID, Quantity: 2}))
	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: b.ID, Quantity: 1}))

	items, err := repo.FindItems(ctx, cart.UserID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, float64(7), items[0].LineTotal)
	assert.Equal(t, float64(5), items[1].LineTotal)
	assert.Equal(t, "a", items[0].Product.Name)

	sum, err := repo.SumLineTotals(ctx, cart.UserID)
	require.NoError(t, err)
	assert.True(t, sum.Valid)
	assert.Equal(t, float64(12), sum.Float64)
}

func TestCartRepository_RoundsHalfAwayFromZero(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()
	fruit := createCategory(t, testDB, "fruit", nil)
	half := createProduct(t, testDB, "half", 2.5, fruit)

	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: half.ID, Quantity: 1}))

	sum, err := repo.SumLineTotals(ctx, cart.UserID)
	require.NoError(t, err)
	assert.Equal(t, float64(3), sum.Float64)
}

func TestCartRepository_SumLineTotals_EmptyCart(t *testing.T) {
	_, repo, cart := setupCartTest(t)

	sum, err := repo.SumLineTotals(context.Background(), cart.UserID)
	require.NoError(t, err)
	assert.False(t, sum.Valid)
}

func TestCartRepository_ItemLifecycle(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()
	fruit := createCategory(t, testDB, "fruit", nil)
	apple := createProduct(t, testDB, "apple", 1, fruit)

	item := &model.CartItem{CartID: cart.UserID, ProductID: apple.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(ctx, item))

	found, err := repo.FindItemByProduct(ctx, cart.UserID, apple.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	require.NoError(t, repo.IncrementItemQuantity(ctx, item.ID, 2))
	found, err = repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)

	count, err := repo.CountItems(ctx, cart.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	_, err = repo.FindItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_FindItemByID_Missing(t *testing.T) {
	_, repo, _ := setupCartTest(t)

	item, err := repo.FindItemByID(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, item)
}

func TestCartRepository_CreateItem_SameProductMergesIntoOneLine(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()
	fruit := createCategory(t, testDB, "fruit", nil)
	apple := createProduct(t, testDB, "apple", 1, fruit)

	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: apple.ID, Quantity: 1}))
	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: apple.ID, Quantity: 2}))

	count, err := repo.CountItems(ctx, cart.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindItemByProduct(ctx, cart.UserID, apple.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)

	var rows int64
	require.NoError(t, testDB.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.UserID, apple.ID).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestCartRepository_DeletingProductCascadesToItems(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()
	fruit := createCategory(t, testDB, "fruit", nil)
	apple := createProduct(t, testDB, "apple", 1, fruit)

	require.NoError(t, repo.CreateItem(ctx, &model.CartItem{CartID: cart.UserID, ProductID: apple.ID, Quantity: 1}))
	require.NoError(t, NewProductRepository(testDB).Delete(ctx, apple.ID))

	count, err := repo.CountItems(ctx, cart.UserID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
