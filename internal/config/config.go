// Package config loads the service configuration from config.toml, an optional
// config.<SERVICE_ENV>.toml overlay and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/export"
	"github.com/talentosprecato/Mari/internal/imports"
	"github.com/talentosprecato/Mari/pkg/database"
	"github.com/talentosprecato/Mari/pkg/logging"
	"github.com/talentosprecato/Mari/pkg/storage"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv selects the overlay.
	EnvServiceEnv = "SERVICE_ENV"

	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"
	EnvServiceVersion         = "SERVICE_VERSION"
)

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	API             APIConfig       `toml:"api"`
	Logging         logging.Config  `toml:"logging"`
	Storage         storage.Config  `toml:"storage"`
	Database        database.Config `toml:"database"`
	CV              cv.Config       `toml:"cv"`
	AI              ai.Config       `toml:"ai"`
	Imports         imports.Config  `toml:"imports"`
	Export          export.Config   `toml:"export"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// UsesDatabase reports whether any configured system needs PostgreSQL.
func (c *Config) UsesDatabase() bool {
	return c.Storage.Backend == storage.BackendPostgres
}

// Load reads the base configuration file, applies the overlay selected by
// SERVICE_ENV and finalizes the result. A missing base file leaves every
// section at its defaults.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates every
// section. The database section is only checked when a system uses it.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.UsesDatabase() {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.CV.Finalize(cvEnv); err != nil {
		return fmt.Errorf("cv: %w", err)
	}
	if err := c.AI.Finalize(aiEnv); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if err := c.Imports.Finalize(importsEnv); err != nil {
		return fmt.Errorf("imports: %w", err)
	}
	if err := c.Export.Finalize(exportEnv); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Logging.Merge(&overlay.Logging)
	c.Storage.Merge(&overlay.Storage)
	c.Database.Merge(&overlay.Database)
	c.CV.Merge(&overlay.CV)
	c.AI.Merge(&overlay.AI)
	c.Imports.Merge(&overlay.Imports)
	c.Export.Merge(&overlay.Export)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
