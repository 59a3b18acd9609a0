package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/seed"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/ikkim/storefront-backend/pkg/redis"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var (
	assumeYes      bool
	updateProducts bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Storefront catalog tooling",
}

func init() {
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "import without asking for confirmation")
	importCmd.Flags().BoolVar(&updateProducts, "update", false, "overwrite products whose slug already exists")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootDB loads config and opens the database connection.
func bootDB() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})
	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, err
	}
	return cfg, nil
}

// invalidateNavigation drops the cached header categories a running server
// would otherwise keep serving until the TTL expires.
func invalidateNavigation(ctx context.Context, cfg *config.Config) {
	if !cfg.Redis.Enabled() {
		return
	}
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, navigation cache left to expire", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer redis.Close()
	service.NewRedisNavigationCache(redis.GetClient(), cfg.Redis.NavigationTTL).InvalidateRoots(ctx)
}

// seed migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the storefront tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate()
	},
}

// seed import <xlsx>
var importCmd = &cobra.Command{
	Use:   "import <xlsx_file>",
	Short: "Import categories, tags and products from a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := excelize.OpenFile(args[0])
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		catalog, err := seed.ReadCatalog(f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Read %d categories, %d tags, %d products from %s\n",
			len(catalog.Categories), len(catalog.Tags), len(catalog.Products), args[0])

		if !assumeYes && !confirm(cmd, "Do you want to proceed with the import? (yes/no): ") {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}

		cfg, err := bootDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}

		conn := db.GetDB()
		importer := seed.NewImporter(
			repository.NewCategoryRepository(conn),
			repository.NewTagRepository(conn),
			repository.NewProductRepository(conn),
		)
		importer.UpdateProducts = updateProducts

		ctx := context.Background()
		stats, err := importer.Import(ctx, catalog)
		if err != nil {
			return err
		}
		invalidateNavigation(ctx, cfg)

		fmt.Fprintln(out, "Import completed successfully!")
		fmt.Fprintf(out, "  Categories: %d created, %d existing\n", stats.CategoriesCreated, stats.CategoriesSkipped)
		fmt.Fprintf(out, "  Tags:       %d created, %d existing\n", stats.TagsCreated, stats.TagsSkipped)
		fmt.Fprintf(out, "  Products:   %d created, %d updated, %d existing\n",
			stats.ProductsCreated, stats.ProductsUpdated, stats.ProductsSkipped)
		return nil
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}
