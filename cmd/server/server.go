package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/internal/infrastructure"
	"github.com/JaimeStill/promptiverse/internal/seed"
	"github.com/JaimeStill/promptiverse/internal/styles"
)

type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if s.cfg.Seed.OnStartup {
		s.registerSeed()
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup failed", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

// registerSeed installs the built-in style templates once the database
// answers a ping. Seeding failures keep the service from becoming ready.
func (s *Server) registerSeed() {
	lc := s.infra.Lifecycle
	logger := s.infra.Logger.With("system", "seed")

	sys := styles.New(
		styles.NewRepository(s.infra.Database.Connection()),
		s.infra.Schemas,
		logger,
		s.cfg.API.Pagination.Styles,
	)

	lc.OnStartup(func() error {
		ctx, cancel := context.WithTimeout(lc.Context(), s.cfg.Database.ConnTimeoutDuration())
		defer cancel()

		if err := s.infra.Database.Connection().PingContext(ctx); err != nil {
			return fmt.Errorf("seed: database unavailable: %w", err)
		}

		if _, err := seed.Run(lc.Context(), sys, logger); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		return nil
	})
}
