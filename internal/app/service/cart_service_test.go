package service

import (
	"context"
	"testing"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T, cfg config.CartConfig) (CartService, *gorm.DB, *model.User, *model.Category) {
	testDB := setupServiceDB(t)
	cartService := NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
		cfg,
	)
	user := seedUser(t, testDB, "customer@example.com")
	fruit := seedCategory(t, testDB, "fruit", nil)
	return cartService, testDB, user, fruit
}

func TestCartService_GetCartSummary_RoundsEachLine(t *testing.T) {
	cartService, testDB, user, fruit := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})
	ctx := context.Background()

	a := seedProduct(t, testDB, "a", 3.3, fruit)
	b := seedProduct(t, testDB, "b", 5, fruit)
	require.NoError(t, cartService.AddItem(ctx, user.ID, a.ID, 2))
	require.NoError(t, cartService.AddItem(ctx, user.ID, b.ID, 1))

	summary, err := cartService.GetCartSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(12), summary.Subtotal)
	assert.Equal(t, 10, summary.FlatRate)
	assert.Equal(t, float64(22), summary.Total)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, float64(7), summary.Items[0].LineTotal)
}

func TestCartService_GetCartSummary_EmptyCartIsFree(t *testing.T) {
	cartService, _, user, _ := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})

	summary, err := cartService.GetCartSummary(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Subtotal)
	assert.Zero(t, summary.Total)
	assert.Equal(t, 10, summary.FlatRate)
	assert.Empty(t, summary.Items)
}

func TestCartService_GetCartSummary_AfterProductDeleted(t *testing.T) {
	cartService, testDB, user, fruit := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})
	ctx := context.Background()

	apple := seedProduct(t, testDB, "apple", 2, fruit)
	require.NoError(t, cartService.AddItem(ctx, user.ID, apple.ID, 1))
	require.NoError(t, repository.NewProductRepository(testDB).Delete(ctx, apple.ID))

	summary, err := cartService.GetCartSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	cartService, testDB, user, fruit := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})
	ctx := context.Background()

	apple := seedProduct(t, testDB, "apple", 1, fruit)
	require.NoError(t, cartService.AddItem(ctx, user.ID, apple.ID, 1))
	require.NoError(t, cartService.AddItem(ctx, user.ID, apple.ID, 2))

	summary, err := cartService.GetCartSummary(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Quantity)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	cartService, testDB, user, fruit := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})
	ctx := context.Background()
	apple := seedProduct(t, testDB, "apple", 1, fruit)

	assert.ErrorIs(t, cartService.AddItem(ctx, user.ID, apple.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cartService.AddItem(ctx, user.ID, apple.ID, -3), ErrInvalidQuantity)
	assert.ErrorIs(t, cartService.AddItem(ctx, user.ID, 9999, 1), ErrProductNotFound)

	count, err := cartService.CountItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_CountItems_Guest(t *testing.T) {
	cartService, _, _, _ := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})

	count, err := cartService.CountItems(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, testDB, user, fruit := setupCartServiceTest(t, config.CartConfig{DefaultFlatRate: 10})
	ctx := context.Background()
	apple := seedProduct(t, testDB, "apple", 1, fruit)
	require.NoError(t, cartService.AddItem(ctx, user.ID, apple.ID, 1))

	summary, err := cartService.GetCartSummary(ctx, user.ID)
	require.NoError(t, err)
	itemID := summary.Items[0].ID

	require.NoError(t, cartService.RemoveItem(ctx, user.ID, itemID))
	assert.ErrorIs(t, cartService.RemoveItem(ctx, user.ID, itemID), ErrCartItemNotFound)
}

func TestCartService_RemoveItem_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		enforce bool
		wantErr error
	}{
		{"not enforced", false, nil},
		{"enforced", true, ErrCartItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartService, testDB, owner, fruit := setupCartServiceTest(t, config.CartConfig{
				DefaultFlatRate:      10,
				EnforceItemOwnership: tt.enforce,
			})
			ctx := context.Background()
			other := seedUser(t, testDB, "other@example.com")
			apple := seedProduct(t, testDB, "apple", 1, fruit)
			require.NoError(t, cartService.AddItem(ctx, owner.ID, apple.ID, 1))

			summary, err := cartService.GetCartSummary(ctx, owner.ID)
			require.NoError(t, err)

			err = cartService.RemoveItem(ctx, other.ID, summary.Items[0].ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
