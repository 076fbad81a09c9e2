package main

import (
	"net/http"

	"github.com/talentosprecato/Mari/internal/ai"
	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/cv"
	"github.com/talentosprecato/Mari/internal/enhance"
	"github.com/talentosprecato/Mari/internal/export"
	"github.com/talentosprecato/Mari/internal/infrastructure"
	"github.com/talentosprecato/Mari/internal/jobs"
	"github.com/talentosprecato/Mari/internal/prompts"
	"github.com/talentosprecato/Mari/pkg/lifecycle"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, infra *infrastructure.Infrastructure, domain *Domain, cfg *config.Config) {
	logger := infra.Logger

	r.RegisterGroup(routes.Group{
		Prefix:      cfg.API.BasePath,
		Description: "CV editor API",
		Children: []routes.Group{
			cv.NewHandler(domain.CV, logger).Routes(),
			ai.NewHandler(domain.AI, domain.CV, logger).Routes(),
			enhance.NewHandler(domain.Enhance, cfg.Storage.MaxUploadSizeBytes(), logger).Routes(),
			jobs.NewHandler(domain.AI, domain.CV, logger).Routes(),
			export.NewHandler(domain.Export, logger).Routes(),
			prompts.NewHandler(logger).Routes(),
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, infra.Lifecycle)
		},
	})
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
