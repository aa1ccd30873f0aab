// Package docstore connects to the MongoDB document store used when
// STORE_DRIVER=mongo.
package docstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const appName = "wellness-server"

// Connect opens a client for uri, pings the primary and returns the named
// database. Callers disconnect via db.Client().Disconnect.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(database), nil
}

// HealthHandler serves GET /health/db for the document store.
func HealthHandler(db *mongo.Database, logger zerolog.Logger) echo.HandlerFunc {
	return healthHandler(func(ctx context.Context) error {
		return db.Client().Ping(ctx, readpref.Primary())
	}, db.Name(), logger)
}

func healthHandler(ping func(context.Context) error, database string, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("document store health check failed")
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":   "unhealthy",
				"store":    "mongo",
				"database": database,
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"store":    "mongo",
			"database": database,
		})
	}
}
