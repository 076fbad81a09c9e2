package main

import (
	"fmt"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/enhance"
	"github.com/talentosprecato/Mari/internal/export"
	"github.com/talentosprecato/Mari/internal/infrastructure"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
)

// Domain holds the systems behind the API.
type Domain struct {
	CV      cv.System
	AI      ai.System
	Enhance enhance.System
	Export  export.System
}

// NewDomain creates all domain systems from the infrastructure.
func NewDomain(infra *infrastructure.Infrastructure, cfg *config.Config) (*Domain, error) {
	cvSys := cv.New(infra.Lifecycle.Context(), &cfg.CV, infra.Storage, infra.Logger)

	model, err := ai.NewGeminiModel(infra.Lifecycle.Context(), &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("ai model init failed: %w", err)
	}
	if !cfg.AI.Configured() {
		infra.Logger.Warn("GEMINI_API_KEY is not set; ai features are disabled")
	}
	aiSys := ai.New(model, &cfg.AI, infra.Logger)

	return &Domain{
		CV:      cvSys,
		AI:      aiSys,
		Enhance: enhance.New(aiSys, cvSys, infra.Storage, &cfg.Imports, infra.Logger),
		Export: export.New(
			export.NewChromeRenderer(cfg.Export.ChromePath),
			&cfg.Export,
			infra.Logger,
		),
	}, nil
}

// Start registers the domain systems that own background work.
func (d *Domain) Start(lc *lifecycle.Coordinator) error {
	if err := d.CV.Start(lc); err != nil {
		return fmt.Errorf("cv start failed: %w", err)
	}
	return nil
}
