package imports

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Env names the environment variables that override Config.
type Env struct {
	MaxPages string
	MaxSize  string
}

// Config bounds the files accepted for import.
type Config struct {
	// MaxPages is the largest PDF accepted, in pages.
	// Default: 10
	MaxPages int `toml:"max_pages"`

	// MaxSize is the largest file accepted, as a human size ("5MB").
	MaxSize    string `toml:"max_size"`
	maxSizeVal int64
}

// MaxSizeBytes returns the parsed size limit. Valid after Finalize.
func (c *Config) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

// Finalize applies defaults, environment overrides and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	return c.validate()
}

// Merge applies non-zero overlay values.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxPages != 0 {
		c.MaxPages = overlay.MaxPages
	}
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
}

func (c *Config) loadDefaults() {
	if c.MaxPages == 0 {
		c.MaxPages = 10
	}
	if c.MaxSize == "" {
		c.MaxSize = "5MB"
	}
}

func (c *Config) loadEnv(env *Env) error {
	if v := os.Getenv(env.MaxPages); env.MaxPages != "" && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.MaxPages, err)
		}
		c.MaxPages = n
	}
	if v := os.Getenv(env.MaxSize); env.MaxSize != "" && v != "" {
		c.MaxSize = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive")
	}
	size, err := units.FromHumanSize(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size
	return nil
}
