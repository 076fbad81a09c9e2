package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talentosprecato/Mari/internal/config"
	"github.com/talentosprecato/Mari/internal/infrastructure"
	"github.com/talentosprecato/Mari/pkg/routes"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra           *infrastructure.Infrastructure
	domain          *Domain
	http            *httpServer
	shutdownTimeout time.Duration
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	domain, err := NewDomain(infra, cfg)
	if err != nil {
		return nil, err
	}

	handler := buildHandler(infra, domain, cfg)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"storage", cfg.Storage.Backend,
	)

	return &Server{
		infra:           infra,
		domain:          domain,
		http:            newHTTPServer(&cfg.Server, handler, infra.Logger),
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}, nil
}

// Start begins all subsystems and returns once their hooks are registered.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.domain.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails, then shuts every subsystem down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.http.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(s.shutdownTimeout)
	})

	return g.Wait()
}

// Shutdown writes any pending CV edit and then stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.domain.CV.Flush(ctx); err != nil {
		s.infra.Logger.Error("cv flush failed", "error", err)
	}

	return s.infra.Lifecycle.Shutdown(timeout)
}

func buildHandler(infra *infrastructure.Infrastructure, domain *Domain, cfg *config.Config) http.Handler {
	routeSys := routes.New(infra.Logger)
	registerRoutes(routeSys, infra, domain, cfg)

	middlewareSys := buildMiddleware(infra, cfg)
	return middlewareSys.Apply(routeSys.Build())
}
