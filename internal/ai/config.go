package ai

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Env names the environment variables that override Config.
type Env struct {
	APIKey         string
	Model          string
	MaxRetries     string
	InitialBackoff string
}

// Config configures the Gemini client.
type Config struct {
	// APIKey is read from the environment only.
	APIKey string `toml:"-"`

	// Model is the Gemini model used for every request.
	// Default: "gemini-2.5-pro"
	Model string `toml:"model"`

	// MaxRetries bounds the retries of a transient failure.
	MaxRetries int `toml:"max_retries"`

	// InitialBackoff is the wait before the first retry; it doubles on every
	// following one.
	InitialBackoff string `toml:"initial_backoff"`
}

func (c *Config) InitialBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.InitialBackoff)
	return d
}

// Configured reports whether an API key is present.
func (c *Config) Configured() bool {
	return c.APIKey != ""
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
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.InitialBackoff != "" {
		c.InitialBackoff = overlay.InitialBackoff
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-pro"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.InitialBackoff == "" {
		c.InitialBackoff = "1s"
	}
}

func (c *Config) loadEnv(env *Env) error {
	if v := os.Getenv(env.APIKey); env.APIKey != "" && v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(env.Model); env.Model != "" && v != "" {
		c.Model = v
	}
	if v := os.Getenv(env.MaxRetries); env.MaxRetries != "" && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.MaxRetries, err)
		}
		c.MaxRetries = n
	}
	if v := os.Getenv(env.InitialBackoff); env.InitialBackoff != "" && v != "" {
		c.InitialBackoff = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if _, err := time.ParseDuration(c.InitialBackoff); err != nil {
		return fmt.Errorf("invalid initial_backoff: %w", err)
	}
	return nil
}
