package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/tournament/internal/api"
	"github.com/mcoot/tournament/internal/config"
	"github.com/mcoot/tournament/internal/factory"
	"github.com/mcoot/tournament/internal/storage/dynamo"
	redisstorage "github.com/mcoot/tournament/internal/storage/redis"
)

func main() {
	// A missing .env is fine; the process environment still applies
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	app, err := factory.New(ctx, factoryConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		PlayerService: app.PlayerService,
	})

	server := api.NewServer(router, serverConfig(cfg), logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return
	}

	logger.Info("server stopped")
}

// serverConfig applies the configured address and timeouts to the defaults
func serverConfig(cfg config.Config) api.ServerConfig {
	sc := api.DefaultServerConfig()
	sc.Host = cfg.Host
	sc.Port = cfg.Port
	if cfg.ReadTimeout > 0 {
		sc.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		sc.WriteTimeout = cfg.WriteTimeout
	}
	if cfg.ShutdownTimeout > 0 {
		sc.ShutdownTimeout = cfg.ShutdownTimeout
	}
	return sc
}

// factoryConfig maps the environment configuration onto the factory
func factoryConfig(cfg config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:       logger,
		StorageType:  cfg.StorageType,
		SQLitePath:   cfg.SQLitePath,
		StrictWrites: cfg.StrictWrites,
		SeedPlayers:  cfg.SeedPlayers,
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		fc.RedisConfig = &redisCfg
	case factory.StorageTypeDynamoDB:
		dynamoCfg := dynamo.DefaultConfig()
		dynamoCfg.Endpoint = cfg.DynamoDB.Endpoint
		dynamoCfg.Region = cfg.DynamoDB.Region
		dynamoCfg.Table = cfg.DynamoDB.Table
		dynamoCfg.AccessKeyID = cfg.DynamoDB.AccessKeyID
		dynamoCfg.SecretAccessKey = cfg.DynamoDB.SecretAccessKey
		dynamoCfg.SessionToken = cfg.DynamoDB.SessionToken
		fc.DynamoConfig = &dynamoCfg
	}
	return fc
}
