package service

import (
	"fmt"
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func seedUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: email}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, testDB *gorm.DB, slug string, parent *model.Category) *model.Category {
	t.Helper()
	category := &model.Category{Name: slug, Slug: slug}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, price float64, category *model.Category) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", name, category.ID),
		Price:      price,
		CategoryID: category.ID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}
