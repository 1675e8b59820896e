package cmd

import (
	"fmt"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Columns the sync engine reads and writes on the sets table.
var requiredSetColumns = []string{
	"id", "total_cards", "catalog_order",
	"price_sync_progress", "last_price_sync",
	"metadata_sync_progress", "last_metadata_sync",
}

var checkOnly bool

// migrateCmd creates or updates the catalog tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables",
	Long:  `Runs AutoMigrate for sets, cards, prices and sync_metadata. With --check it only reports missing cursor columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadBase()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		if !checkOnly {
			if err := database.Migrate(db, models.All()...); err != nil {
				return err
			}
			logg.Info("Schema migrated", zap.String("driver", cfg.Database.Driver))
		}

		missing, err := database.MissingColumns(db, models.Set{}.TableName(), requiredSetColumns)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("sets table is missing columns: %v", missing)
		}

		logg.Info("Sets table has every sync column")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&checkOnly, "check", false, "Only verify the schema")
	RootCmd.AddCommand(migrateCmd)
}
