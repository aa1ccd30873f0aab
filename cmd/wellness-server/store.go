package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wellness/wellness/internal/config"
	"github.com/wellness/wellness/internal/domain/health"
	"github.com/wellness/wellness/internal/platform/db"
	"github.com/wellness/wellness/internal/platform/docstore"
	"github.com/wellness/wellness/migrations"
)

// store bundles the reading repository for the configured driver with its
// readiness probe and teardown.
type store struct {
	readings health.ReadingRepository
	health   echo.HandlerFunc
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger, autoMigrate bool) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("connected to postgres")

		if autoMigrate {
			count, err := db.NewMigrator(pool, migrations.FS).Up(ctx)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("auto-migrate: %w", err)
			}
			logger.Info().Int("applied", count).Msg("migrations applied")
		}

		return &store{
			readings: health.NewReadingRepoPG(pool),
			health:   db.HealthHandler(pool, logger),
			close:    pool.Close,
		}, nil

	case config.DriverMongo:
		database, err := docstore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("database", cfg.MongoDB).Msg("connected to mongodb")

		if err := health.EnsureReadingIndexes(ctx, database); err != nil {
			_ = database.Client().Disconnect(context.Background())
			return nil, err
		}

		return &store{
			readings: health.NewReadingRepoMongo(database),
			health:   docstore.HealthHandler(database, logger),
			close: func() {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := database.Client().Disconnect(dctx); err != nil {
					logger.Warn().Err(err).Msg("mongodb disconnect failed")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
