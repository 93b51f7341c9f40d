package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the booker service.
// Environment variables are parsed from the BOOKER_ prefix,
// e.g. BOOKER_HTTP_PORT, BOOKER_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage. DBDriver selects the document-store backend.
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/booker.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Narrative text service (flavor text only; never blocks the simulation).
	NarrativeEnabled bool   `envconfig:"NARRATIVE_ENABLED" default:"true"`
	NarrativeURL     string `envconfig:"NARRATIVE_URL" default:"https://generativelanguage.googleapis.com"`
	NarrativeAPIKey  string `envconfig:"NARRATIVE_API_KEY" default:""`
	NarrativeModel   string `envconfig:"NARRATIVE_MODEL" default:"gemini-2.5-flash-preview-09-2025"`

	// Game constants.
	CardSize    int     `envconfig:"CARD_SIZE" default:"10"`
	EventChance float64 `envconfig:"EVENT_CHANCE" default:"0.25"`
	BaseYear    int     `envconfig:"BASE_YEAR" default:"2025"`
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BOOKER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver selection and constant sanity.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("BOOKER_POSTGRES_DSN is required when DB_DRIVER=postgres")
	}
	if c.CardSize < 1 {
		return fmt.Errorf("CARD_SIZE must be at least 1, got %d", c.CardSize)
	}
	if c.EventChance < 0 || c.EventChance > 1 {
		return fmt.Errorf("EVENT_CHANCE must be within [0,1], got %v", c.EventChance)
	}
	return nil
}

// NewForTesting returns a config suitable for unit tests: in-memory sqlite,
// narrative disabled.
func NewForTesting() *Config {
	return &Config{
		HTTPPort:    8080,
		DBDriver:    "sqlite",
		SQLitePath:  "file::memory:?cache=shared",
		CardSize:    10,
		EventChance: 0.25,
		BaseYear:    2025,
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
