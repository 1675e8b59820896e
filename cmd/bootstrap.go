package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/archive"
	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/store"
	catalogsync "catalog-sync/feature/catalog/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *gorm.DB
	orchestrator *catalogsync.Orchestrator
}

func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// bootstrap loads config, connects to the database and builds the orchestrator.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, logg, err := loadBase()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	var opts []catalogsync.Option
	if cfg.Storage.Enabled {
		sc, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, sc, cfg.Storage); err != nil {
			return nil, err
		}
		opts = append(opts, catalogsync.WithArchive(archive.New(sc, cfg.Storage)))
		logg.Info("Snapshot archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	orch := catalogsync.New(client.New(cfg.Catalog), store.New(db), cfg.Sync, logg, opts...)

	return &app{cfg: cfg, logger: logg, db: db, orchestrator: orch}, nil
}
