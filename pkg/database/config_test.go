package database_test

import (
	"testing"
	"time"

	"github.com/talentosprecato/Mari/pkg/database"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := database.Config{Name: "mari", User: "mari"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "localhost")
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Port)
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("ConnTimeoutDuration() = %v, want 5s", cfg.ConnTimeoutDuration())
	}
}

func TestConfig_Finalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing name", database.Config{User: "mari"}},
		{"missing user", database.Config{Name: "mari"}},
		{"bad lifetime", database.Config{Name: "mari", User: "mari", ConnMaxLifetime: "soon"}},
		{"bad timeout", database.Config{Name: "mari", User: "mari", ConnTimeout: "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() error = nil, want error")
			}
		})
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_PASSWORD", "secret")

	cfg := database.Config{Name: "mari", User: "mari"}
	env := &database.Env{Port: "TEST_DB_PORT", Password: "TEST_DB_PASSWORD"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	want := "host=localhost port=6543 dbname=mari user=mari password=secret sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}
