// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration
type Config struct {
	Host     string     `env:"TOURNAMENT_HOST"`
	Port     int        `env:"TOURNAMENT_PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// Zero keeps the server default
	ReadTimeout     time.Duration `env:"TOURNAMENT_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"TOURNAMENT_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"TOURNAMENT_SHUTDOWN_TIMEOUT"`

	// StorageType is one of memory, redis, dynamodb, sqlite
	StorageType  string `env:"STORAGE_TYPE" envDefault:"memory"`
	StrictWrites bool   `env:"TOURNAMENT_STRICT_WRITES" envDefault:"false"`
	SeedPlayers  bool   `env:"TOURNAMENT_SEED_PLAYERS" envDefault:"false"`

	RedisURL   string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"tournament.db"`

	DynamoDB DynamoDB
}

// DynamoDB holds the DynamoDB connection settings. An unset or empty
// endpoint targets AWS for the configured region.
type DynamoDB struct {
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	Region          string `env:"DYNAMODB_REGION" envDefault:"eu-west-3"`
	Table           string `env:"DYNAMODB_TABLE" envDefault:"players"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
