// Package open builds the repository.Store selected by configuration.
package open

import (
	"context"
	"fmt"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/repository"
	fsstore "taskboard/internal/repository/firestore"
	"taskboard/internal/repository/memory"
	mongostore "taskboard/internal/repository/mongo"
	pgstore "taskboard/internal/repository/postgres"
	"taskboard/pkg/logger"
)

// Store connects to the backend named by cfg.StoreDriver.
func Store(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.DBPoolSize)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateOrCreateSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return pgstore.New(db), nil
	case config.DriverMongo:
		client, err := database.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		s, err := mongostore.New(ctx, client, cfg.MongoDatabase)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return s, nil
	case config.DriverFirestore:
		client, err := database.OpenFirestore(ctx, cfg.GCPProject)
		if err != nil {
			return nil, err
		}
		return fsstore.New(client), nil
	case config.DriverMemory:
		logger.Warn(ctx, "Using in-memory store; data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
