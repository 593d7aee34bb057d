// Package repository provides the interfaces of storage.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iVbk/khmerlink/internal/config"
	"github.com/iVbk/khmerlink/internal/errs"
	"github.com/iVbk/khmerlink/internal/models"
	"github.com/iVbk/khmerlink/internal/repository/backend"
	"github.com/iVbk/khmerlink/internal/repository/filestore"
	"github.com/iVbk/khmerlink/internal/repository/memstore"
	"github.com/iVbk/khmerlink/internal/repository/postgres"
	"github.com/iVbk/khmerlink/internal/repository/rediscache"
	"github.com/iVbk/khmerlink/migrations"
	"github.com/redis/go-redis/v9"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zapadapter"
	"go.uber.org/zap"
)

// MappingStorage is the interface of the slug mapping storage.
type MappingStorage interface {
	// Create inserts a new slug to destination mapping. Both inputs are
	// trimmed; an existing slug fails with ErrAlreadyExists and performs
	// no write.
	Create(ctx context.Context, slug, destination string) error

	// Resolve returns the destination for a slug, or ErrNotFound.
	Resolve(ctx context.Context, slug models.Slug) (models.Destination, error)

	// All returns the complete mapping table.
	All(ctx context.Context) (models.MappingTable, error)

	// Ping checks the health of the storage.
	Ping(ctx context.Context) error
}

// Interface implementation guards.
var (
	_ MappingStorage = (*filestore.FileStore)(nil)
	_ MappingStorage = (*memstore.MappingRepository)(nil)
	_ MappingStorage = (*postgres.MappingRepository)(nil)
	_ MappingStorage = (*rediscache.Cache)(nil)
)

// NewMappingStore returns one of the MappingStorage implementations based
// on the configuration: postgres when a DSN is provided, the JSON file
// store when a data file is set, pure in-memory otherwise. When a redis
// address is configured the chosen store is wrapped with a resolve cache.
func NewMappingStore(config *config.Config, logger *zap.Logger) (MappingStorage, error) {
	// Check for dependencies that can lead to panic.
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	store, err := newBaseStore(config, logger)
	if err != nil {
		return nil, err
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		logger.Info("resolve cache enabled", zap.String("addr", config.RedisAddr))
		return rediscache.New(store, client, config.RedisTTL, logger), nil
	}

	return store, nil
}

func newBaseStore(config *config.Config, logger *zap.Logger) (MappingStorage, error) {
	// Init postgres mapping repository if DSN is provided.
	if config.DSN != "" {
		// Connect to the postgres.
		db, err := sql.Open("pgx", config.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open the database: %w", err)
		}

		// Log every query to the database.
		db = sqldblogger.OpenDriver(config.DSN, db.Driver(), zapadapter.New(logger))

		// Check connectivity and DSN correctness.
		if err = db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}

		if err = migrations.Up(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}

		return postgres.NewMappingRepository(db, logger)
	}

	logger.Info("DSN is not provided, initializing file storage")

	if config.DataFile == "" {
		logger.Info("data file isn't set, using in memory storage")
		return memstore.New(), nil
	}

	var b backend.Backend = backend.NewLocalFS(config.DataFile)
	if config.BootstrapFile != "" {
		b = backend.NewSeeded(backend.NewLocalFS(config.DataFile), config.BootstrapFile)
	}

	store, err := filestore.New(b)
	if err != nil {
		return nil, fmt.Errorf("new file repository: %w", err)
	}

	logger.Info("file storage initialized", zap.String("path", config.DataFile))

	return store, nil
}
