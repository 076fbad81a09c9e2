package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/infrastructure"
)

func main() {
	var (
		all      = flag.Bool("all", false, "Run all seeders")
		document = flag.Bool("document", false, "Seed the CV snapshot")
		pending  = flag.Bool("pending", false, "Discard pending enhancement results")
		file     = flag.String("file", "", "External CV snapshot file (overrides the sample document)")
		force    = flag.Bool("force", false, "Replace an existing CV snapshot")
		list     = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
		names = []string{"document", "pending"}
	case *document:
		names = []string{"document"}
	case *pending:
		names = []string{"pending"}
	default:
		fmt.Println("usage: seed [-all|-document|-pending] [-file <path>] [-force] [-list]")
		flag.PrintDefaults()
		return
	}

	if s, ok := getSeeder("document"); ok {
		s.(*DocumentSeeder).SetFile(*file)
		s.(*DocumentSeeder).SetForce(*force)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("env file load failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatalf("infrastructure init failed: %v", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatalf("infrastructure start failed: %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	err = runSeeders(context.Background(), infra.Storage, cfg, infra.Logger, names...)

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}
