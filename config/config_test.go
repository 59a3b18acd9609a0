package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Catalog.PageSize)
	assert.Equal(t, "/media", cfg.Catalog.MediaBaseURL)
	assert.Equal(t, 10, cfg.Cart.DefaultFlatRate)
	assert.False(t, cfg.Cart.EnforceItemOwnership)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.NavigationTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("CART_DEFAULT_FLAT_RATE", "4")
	t.Setenv("CART_ENFORCE_ITEM_OWNERSHIP", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/shop.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 4, cfg.Cart.DefaultFlatRate)
	assert.True(t, cfg.Cart.EnforceItemOwnership)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, "/tmp/shop.db", cfg.Database.DSN())
}

func TestLoad_InvalidPageSize(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     "5432",
		User:     "shop",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=shop password=secret dbname=storefront sslmode=disable", cfg.DSN())
}

func TestParseSlice(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, parseSlice("http://a,http://b"))
	assert.Equal(t, []string{}, parseSlice(""))
}
