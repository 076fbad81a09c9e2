package config_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:8080")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.Storage.Backend != storage.BackendFilesystem {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, storage.BackendFilesystem)
	}
	if cfg.CV.SnapshotKey != "cv/document.json" {
		t.Errorf("SnapshotKey = %q, want cv/document.json", cfg.CV.SnapshotKey)
	}
	if cfg.CV.SaveDelayDuration() != time.Second {
		t.Errorf("SaveDelay = %v, want 1s", cfg.CV.SaveDelayDuration())
	}
	if cfg.AI.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want gemini-2.5-pro", cfg.AI.Model)
	}
	if cfg.Imports.MaxPages != 10 {
		t.Errorf("MaxPages = %d, want 10", cfg.Imports.MaxPages)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.UsesDatabase() {
		t.Error("UsesDatabase() = true for the filesystem backend")
	}
}

func TestLoad_Overlay(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvServiceEnv, "test")

	writeFile(t, config.BaseConfigFile, `
version = "1.2.0"

[server]
port = 9000

[storage]
backend = "memory"

[cv]
save_delay = "2s"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]
`)
	writeFile(t, "config.test.toml", `
[server]
port = 9100

[cv]
status_reset_delay = "5s"
`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Storage.Backend != storage.BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.CV.SaveDelayDuration() != 2*time.Second {
		t.Errorf("SaveDelay = %v, want 2s", cfg.CV.SaveDelayDuration())
	}
	if cfg.CV.StatusResetDelayDuration() != 5*time.Second {
		t.Errorf("StatusResetDelay = %v, want 5s", cfg.CV.StatusResetDelayDuration())
	}
	if cfg.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", cfg.Version)
	}
	if len(cfg.API.CORS.Origins) != 1 || cfg.API.CORS.Origins[0] != "http://localhost:5173" {
		t.Errorf("Origins = %v", cfg.API.CORS.Origins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("API_BASE_PATH", "/v1")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Server.Port)
	}
	if !cfg.AI.Configured() {
		t.Error("AI.Configured() = false with GEMINI_API_KEY set")
	}
	if cfg.Storage.Backend != storage.BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.API.BasePath != "/v1" {
		t.Errorf("BasePath = %q, want /v1", cfg.API.BasePath)
	}
}

func TestLoad_Postgres(t *testing.T) {
	t.Chdir(t.TempDir())

	writeFile(t, config.BaseConfigFile, `
[storage]
backend = "postgres"
`)
	if _, err := config.Load(); err == nil || !strings.Contains(err.Error(), "database") {
		t.Errorf("Load() error = %v, want a database error", err)
	}

	t.Setenv("DATABASE_NAME", "cv")
	t.Setenv("DATABASE_USER", "cv")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UsesDatabase() {
		t.Error("UsesDatabase() = false for the postgres backend")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"malformed toml", `[server`},
		{"bad shutdown timeout", `shutdown_timeout = "soon"`},
		{"bad port", "[server]\nport = 70000"},
		{"bad base path", "[api]\nbase_path = \"api/\""},
		{"bad backend", "[storage]\nbackend = \"floppy\""},
		{"bad save delay", "[cv]\nsave_delay = \"later\""},
		{"bad export timeout", "[export]\ntimeout = \"-5s\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			writeFile(t, config.BaseConfigFile, tt.config)

			if _, err := config.Load(); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}
