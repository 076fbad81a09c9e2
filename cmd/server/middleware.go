package main

import (
	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/infrastructure"
	"github.com/talentosprecato/Mari/pkg/middleware"
)

// buildMiddleware creates and configures the middleware stack with logging and CORS.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.TrimSlash())
	middlewareSys.Use(middleware.Logger(infra.Logger))
	middlewareSys.Use(middleware.CORS(&cfg.API.CORS))
	return middlewareSys
}
