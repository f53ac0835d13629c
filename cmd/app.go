package cmd

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/feed"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"

	"go.uber.org/zap"
)

// app bundles everything a command needs after bootstrapping.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	service *catalog.Service
}

// setup loads configuration and assembles the catalog service. Every
// command goes through here so the wiring exists in exactly one place.
func setup() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	opts := catalog.ExtractOptions{CategoryNameSource: catalog.NameSourceText}
	if cfg.Feed.CategoryNameSource == string(catalog.NameSourceChild) {
		opts.CategoryNameSource = catalog.NameSourceChild
	}

	fetcher := feed.NewClient(cfg.Feed)
	sync := catalog.NewSynchronizer(db, fetcher, opts, log)

	if cfg.Archive.Enabled {
		client, err := storage.NewClient(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Archive.TimeoutSeconds)*time.Second)
		defer cancel()
		if err := storage.EnsureBucket(ctx, client, cfg.Archive.Bucket, cfg.Archive.Region); err != nil {
			return nil, fmt.Errorf("failed to prepare archive bucket: %w", err)
		}

		sync.SetArchive(client, cfg.Archive.Bucket)
		log.Info("Feed snapshot archiving enabled", zap.String("bucket", cfg.Archive.Bucket))
	}

	return &app{
		cfg:     cfg,
		log:     log,
		service: catalog.NewService(db, sync, log),
	}, nil
}
