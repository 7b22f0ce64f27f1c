package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL string        `env:"TOURNAMENT_SERVER" envDefault:"http://localhost:8080"`
	Output    string        `env:"TOURNAMENT_OUTPUT" envDefault:"text"`
	Timeout   time.Duration `env:"TOURNAMENT_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads the CLI configuration from the environment
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the output format and server URL
func (c Config) Validate() error {
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server URL %q", c.ServerURL)
	}
	return nil
}
