package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/tournament/internal/services/player"
	"github.com/mcoot/tournament/internal/services/policy"
	"github.com/mcoot/tournament/internal/storage"
	"github.com/mcoot/tournament/internal/storage/dynamo"
	"github.com/mcoot/tournament/internal/storage/memory"
	redisstorage "github.com/mcoot/tournament/internal/storage/redis"
	"github.com/mcoot/tournament/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeDynamoDB = "dynamodb"
	StorageTypeSQLite   = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	Policy        *policy.Policy
	PlayerService *player.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DynamoConfig holds DynamoDB settings (required if StorageType is "dynamodb")
	DynamoConfig *dynamo.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// StrictWrites turns on conditional writes for create and update
	StrictWrites bool
	// SeedPlayers stores the demo players at startup
	SeedPlayers bool
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, logger, cfg.StrictWrites)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	if cfg.SeedPlayers {
		if err := app.Seed(ctx); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	logger.Info("application created",
		slog.String("storage_type", storageTypeOrDefault(cfg.StorageType)),
		slog.Bool("strict_writes", cfg.StrictWrites),
	)
	return app, nil
}

func storageTypeOrDefault(storageType string) string {
	if storageType == "" {
		return StorageTypeMemory
	}
	return storageType
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, io.Closer, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, redisStore, nil
	case StorageTypeDynamoDB:
		if cfg.DynamoConfig == nil {
			return nil, nil, errors.New("DynamoConfig required when StorageType is dynamodb")
		}
		dynamoStore, err := dynamo.New(ctx, *cfg.DynamoConfig)
		if err != nil {
			return nil, nil, err
		}
		return dynamoStore, nil, nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqliteStore, sqliteStore, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be one of memory, redis, dynamodb, sqlite", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, logger *slog.Logger, strictWrites bool) *App {
	pol := policy.New()
	playerService := player.New(store, pol, logger, player.WithStrictWrites(strictWrites))

	return &App{
		Storage:       store,
		Policy:        pol,
		PlayerService: playerService,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
