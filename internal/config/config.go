// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package config loads and validates the service configuration from
// defaults, an optional YAML file and INSIGHT_-prefixed environment
// variables, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tugotugo/insight/internal/offers"
	"github.com/tugotugo/insight/internal/recommend"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server" validate:"required"`
	Logging   LoggingConfig    `koanf:"logging"`
	Storage   StorageConfig    `koanf:"storage"`
	Offers    OffersConfig     `koanf:"offers"`
	Recommend recommend.Config `koanf:"recommend"`
	Behavior  BehaviorConfig   `koanf:"behavior"`
	Chat      ChatConfig       `koanf:"chat"`
	Forecast  ForecastConfig   `koanf:"forecast"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host and Port form the listen address.
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout, WriteTimeout and ShutdownTimeout bound request
	// handling and graceful shutdown.
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestsPerMinute throttles clients by IP. Zero disables.
	RequestsPerMinute int `koanf:"requests_per_minute"`

	// CORSOrigins lists allowed origins. Empty allows none.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`
}

// StorageConfig configures behavior persistence.
type StorageConfig struct {
	// Backend is "badger" or "memory".
	Backend string `koanf:"backend" validate:"oneof=badger memory"`

	// Path is the Badger data directory. Ignored for memory.
	Path string `koanf:"path"`

	// GCInterval is how often the Badger value log is garbage
	// collected.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// OffersConfig configures the candidate-offer source.
type OffersConfig struct {
	// Backend is "http" or "static". The static backend serves the
	// bundled demo snapshot and exists for development.
	Backend string `koanf:"backend" validate:"oneof=http static"`

	HTTP offers.HTTPConfig `koanf:"http"`
}

// BehaviorConfig configures the behavior tracker.
type BehaviorConfig struct {
	// RetentionMaxEvents caps each per-user history list.
	RetentionMaxEvents int `koanf:"retention_max_events" validate:"min=1"`
}

// ChatConfig configures the conversational assistant.
type ChatConfig struct {
	// Seed fixes template selection for reproducible conversations in
	// tests. Zero selects the built-in default.
	Seed int64 `koanf:"seed"`
}

// ForecastConfig configures the forecast simulator.
type ForecastConfig struct {
	Seed         int64 `koanf:"seed"`
	EmbeddingDim int   `koanf:"embedding_dim" validate:"min=1"`
}

// Default returns the configuration defaults applied before file and
// environment overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RequestsPerMinute: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Backend:    "badger",
			Path:       "/data/insight",
			GCInterval: 10 * time.Minute,
		},
		Offers: OffersConfig{
			Backend: "static",
			HTTP:    offers.DefaultHTTPConfig(),
		},
		Recommend: *recommend.DefaultConfig(),
		Behavior: BehaviorConfig{
			RetentionMaxEvents: 500,
		},
		Chat: ChatConfig{
			Seed: 0,
		},
		Forecast: ForecastConfig{
			Seed:         0,
			EmbeddingDim: 16,
		},
	}
}

// Validate checks the configuration, combining struct-tag validation
// with the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Storage.Backend == "badger" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the badger backend")
	}
	if c.Offers.Backend == "http" && c.Offers.HTTP.URL == "" {
		return fmt.Errorf("offers.http.url is required for the http backend")
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
