// Package config defines the service configuration and how it is loaded.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Response store backends.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// CORSOrigin is echoed in Access-Control-Allow-Origin.
	CORSOrigin string `koanf:"cors_origin"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`
	RedisURI      string `koanf:"redis_uri"`

	// ResponseStore selects where per-answer rows go: mongo or sqlite.
	ResponseStore string `koanf:"response_store"`
	SQLitePath    string `koanf:"sqlite_path"`
	// StoreTimeout bounds the single best-effort response write.
	StoreTimeout time.Duration `koanf:"store_timeout"`

	// SessionTTL is how long an idle questionnaire session lives in Redis.
	SessionTTL time.Duration `koanf:"session_ttl"`

	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	JWTSecret     string `koanf:"jwt_secret"`

	Narrative NarrativeConfig `koanf:"narrative"`
	Delivery  DeliveryConfig  `koanf:"delivery"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":8080",
		CORSOrigin:    "*",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "nnx1",
		RedisURI:      "localhost:6379",
		ResponseStore: StoreMongo,
		SQLitePath:    "nnx1.db",
		StoreTimeout:  3 * time.Second,
		SessionTTL:    24 * time.Hour,
		AdminUsername: "admin",
		JWTSecret:     "change-me-in-production",
		Narrative:     DefaultNarrativeConfig(),
		Delivery:      DefaultDeliveryConfig(),
	}
}

// Validate checks the invariants the services rely on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ResponseStore != StoreMongo && c.ResponseStore != StoreSQLite:
		return fmt.Errorf("%w: response_store must be %q or %q, got %q", ErrInvalidConfig, StoreMongo, StoreSQLite, c.ResponseStore)
	case c.ResponseStore == StoreSQLite && c.SQLitePath == "":
		return fmt.Errorf("%w: sqlite_path is required for the sqlite store", ErrInvalidConfig)
	case c.SessionTTL <= 0:
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig)
	case c.StoreTimeout <= 0:
		return fmt.Errorf("%w: store_timeout must be positive", ErrInvalidConfig)
	case c.JWTSecret == "":
		return fmt.Errorf("%w: jwt_secret must not be empty", ErrInvalidConfig)
	}
	if err := c.Narrative.Validate(); err != nil {
		return err
	}
	return c.Delivery.Validate()
}

// RedisAddr strips an optional redis:// scheme.
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}
