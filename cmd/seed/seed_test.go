package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/pkg/logging"
	"github.com/talentosprecato/Mari/pkg/storage"
)

func seedConfig() *config.Config {
	return &config.Config{CV: cv.Config{SnapshotKey: "cv/document.json"}}
}

func TestDocumentSeeder(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	cfg := seedConfig()

	if err := (&DocumentSeeder{}).Seed(ctx, st, cfg, logging.Discard()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	data, err := st.Retrieve(ctx, cfg.CV.SnapshotKey)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	doc, err := cv.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if want := cv.Default().Personal.FullName; doc.Personal.FullName != want {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, want)
	}
	for _, e := range doc.Experience {
		if e.ID == "" {
			t.Error("experience item has no id")
		}
	}
}

func TestDocumentSeeder_File(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	cfg := seedConfig()

	path := filepath.Join(t.TempDir(), "cv.json")
	snapshot := `{"personal":{"fullName":"Grace Hopper"},"experience":[],"education":[],"projects":[],"certifications":[]}`
	if err := os.WriteFile(path, []byte(snapshot), 0644); err != nil {
		t.Fatal(err)
	}

	if err := st.Store(ctx, cfg.CV.SnapshotKey, []byte("{}")); err != nil {
		t.Fatal(err)
	}

	seeder := &DocumentSeeder{}
	seeder.SetFile(path)

	if err := seeder.Seed(ctx, st, cfg, logging.Discard()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if data, _ := st.Retrieve(ctx, cfg.CV.SnapshotKey); string(data) != "{}" {
		t.Errorf("existing snapshot replaced without force: %s", data)
	}

	seeder.SetForce(true)
	if err := seeder.Seed(ctx, st, cfg, logging.Discard()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	data, err := st.Retrieve(ctx, cfg.CV.SnapshotKey)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	doc, err := cv.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Personal.FullName != "Grace Hopper" {
		t.Errorf("FullName = %q, want %q", doc.Personal.FullName, "Grace Hopper")
	}
}

func TestDocumentSeeder_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	if err := os.WriteFile(path, []byte(`{"personal":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	seeder := &DocumentSeeder{}
	seeder.SetFile(path)

	if err := seeder.Seed(context.Background(), storage.NewMemory(), seedConfig(), logging.Discard()); err == nil {
		t.Error("Seed() error = nil, want invalid snapshot")
	}
}

func TestPendingSeeder(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()

	for _, key := range []string{"enhance/a.json", "enhance/b.json", "cv/document.json"} {
		if err := st.Store(ctx, key, []byte("{}")); err != nil {
			t.Fatal(err)
		}
	}

	if err := runSeeders(ctx, st, seedConfig(), logging.Discard(), "pending"); err != nil {
		t.Fatalf("runSeeders() error = %v", err)
	}

	keys, err := st.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "cv/document.json" {
		t.Errorf("keys = %v, want [cv/document.json]", keys)
	}
}

func TestRunSeeders_Unknown(t *testing.T) {
	err := runSeeders(context.Background(), storage.NewMemory(), seedConfig(), logging.Discard(), "profiles")
	if err == nil {
		t.Error("runSeeders() error = nil, want unknown seeder")
	}
}

func TestListSeeders(t *testing.T) {
	got := listSeeders()
	if len(got) != 2 || got[0].Name() != "document" || got[1].Name() != "pending" {
		t.Errorf("listSeeders() = %v, want document and pending", got)
	}
}
