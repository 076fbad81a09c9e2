package cv

import (
	"fmt"
	"os"
	"time"
)

// Env names the environment variables that override Config.
type Env struct {
	SnapshotKey      string
	SaveDelay        string
	StatusResetDelay string
}

// Config controls where the Document is persisted and how saves are paced.
type Config struct {
	// SnapshotKey is the storage key of the Document snapshot.
	// Default: "cv/document.json"
	SnapshotKey string `toml:"snapshot_key"`

	// SaveDelay is the quiet period after the last mutation before a save.
	SaveDelay string `toml:"save_delay"`

	// StatusResetDelay is how long saved and error stay visible before idle.
	StatusResetDelay string `toml:"status_reset_delay"`
}

func (c *Config) SaveDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.SaveDelay)
	return d
}

func (c *Config) StatusResetDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.StatusResetDelay)
	return d
}

// Finalize applies defaults, environment overrides and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero overlay values.
func (c *Config) Merge(overlay *Config) {
	if overlay.SnapshotKey != "" {
		c.SnapshotKey = overlay.SnapshotKey
	}
	if overlay.SaveDelay != "" {
		c.SaveDelay = overlay.SaveDelay
	}
	if overlay.StatusResetDelay != "" {
		c.StatusResetDelay = overlay.StatusResetDelay
	}
}

func (c *Config) loadDefaults() {
	if c.SnapshotKey == "" {
		c.SnapshotKey = "cv/document.json"
	}
	if c.SaveDelay == "" {
		c.SaveDelay = "1s"
	}
	if c.StatusResetDelay == "" {
		c.StatusResetDelay = "2s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.SnapshotKey); env.SnapshotKey != "" && v != "" {
		c.SnapshotKey = v
	}
	if v := os.Getenv(env.SaveDelay); env.SaveDelay != "" && v != "" {
		c.SaveDelay = v
	}
	if v := os.Getenv(env.StatusResetDelay); env.StatusResetDelay != "" && v != "" {
		c.StatusResetDelay = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.SaveDelay)
	if err != nil {
		return fmt.Errorf("invalid save_delay: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("save_delay must be positive")
	}
	if _, err := time.ParseDuration(c.StatusResetDelay); err != nil {
		return fmt.Errorf("invalid status_reset_delay: %w", err)
	}
	return nil
}
