package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Backend names.
const (
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
	BackendPostgres   = "postgres"
	BackendS3         = "s3"
	BackendGCS        = "gcs"
)

// Env names the environment variables that override Config.
type Env struct {
	Backend        string
	BasePath       string
	MaxUploadSize  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	GCSBucket      string
	GCSCredentials string
}

// Config selects and configures the storage backend.
type Config struct {
	Backend string `toml:"backend"`

	// BasePath is the root directory for the filesystem backend.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// MaxUploadSize bounds uploaded files, as a human size ("10MB").
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64

	S3  S3Config  `toml:"s3"`
	GCS GCSConfig `toml:"gcs"`
}

// S3Config configures an S3-compatible bucket (AWS, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	Prefix    string `toml:"prefix"`
	AccessKey string `toml:"-"`
	SecretKey string `toml:"-"`
}

// GCSConfig configures a Google Cloud Storage bucket.
type GCSConfig struct {
	Bucket          string `toml:"bucket"`
	Prefix          string `toml:"prefix"`
	CredentialsFile string `toml:"credentials_file"`
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
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
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.S3.Bucket != "" {
		c.S3.Bucket = overlay.S3.Bucket
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.Prefix != "" {
		c.S3.Prefix = overlay.S3.Prefix
	}
	if overlay.GCS.Bucket != "" {
		c.GCS.Bucket = overlay.GCS.Bucket
	}
	if overlay.GCS.Prefix != "" {
		c.GCS.Prefix = overlay.GCS.Prefix
	}
	if overlay.GCS.CredentialsFile != "" {
		c.GCS.CredentialsFile = overlay.GCS.CredentialsFile
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if c.S3.Region == "" {
		c.S3.Region = "auto"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.Backend, &c.Backend)
	set(env.BasePath, &c.BasePath)
	set(env.MaxUploadSize, &c.MaxUploadSize)
	set(env.S3Bucket, &c.S3.Bucket)
	set(env.S3Region, &c.S3.Region)
	set(env.S3Endpoint, &c.S3.Endpoint)
	set(env.S3AccessKey, &c.S3.AccessKey)
	set(env.S3SecretKey, &c.S3.SecretKey)
	set(env.GCSBucket, &c.GCS.Bucket)
	set(env.GCSCredentials, &c.GCS.CredentialsFile)
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket required")
		}
	case BackendGCS:
		if c.GCS.Bucket == "" {
			return fmt.Errorf("gcs.bucket required")
		}
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
