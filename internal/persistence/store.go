package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/config"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	"github.com/SBShweta/blood-donation-app/internal/repository/memory"
	"github.com/SBShweta/blood-donation-app/internal/repository/mongodb"
	"github.com/SBShweta/blood-donation-app/internal/repository/postgres"
)

// OpenStore connects the backend selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, err := NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		store := mongodb.New(client, cfg.Mongo.Database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		return store, nil
	case config.StoreDriverPostgres:
		pool, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return postgres.New(pool), nil
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
