package export

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Env names the environment variables that override Config.
type Env struct {
	ChromePath  string
	Timeout     string
	MaxHTMLSize string
}

// Config controls the headless browser used for printing.
type Config struct {
	// ChromePath is the browser executable. Empty uses the one found on PATH.
	ChromePath string `toml:"chrome_path"`

	// Timeout bounds one print, browser start included.
	// Default: "60s"
	Timeout string `toml:"timeout"`

	// MaxHTMLSize bounds the submitted markup, as a human size ("2MB").
	MaxHTMLSize    string `toml:"max_html_size"`
	maxHTMLSizeVal int64
}

func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxHTMLSizeBytes returns the parsed markup limit. Valid after Finalize.
func (c *Config) MaxHTMLSizeBytes() int64 {
	return c.maxHTMLSizeVal
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
	if overlay.ChromePath != "" {
		c.ChromePath = overlay.ChromePath
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxHTMLSize != "" {
		c.MaxHTMLSize = overlay.MaxHTMLSize
	}
}

func (c *Config) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.MaxHTMLSize == "" {
		c.MaxHTMLSize = "2MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.ChromePath); env.ChromePath != "" && v != "" {
		c.ChromePath = v
	}
	if v := os.Getenv(env.Timeout); env.Timeout != "" && v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(env.MaxHTMLSize); env.MaxHTMLSize != "" && v != "" {
		c.MaxHTMLSize = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	size, err := units.FromHumanSize(c.MaxHTMLSize)
	if err != nil {
		return fmt.Errorf("invalid max_html_size: %w", err)
	}
	c.maxHTMLSizeVal = size

	return nil
}
