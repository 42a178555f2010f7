// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, schema registry)
// that domain systems require.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/pkg/database"
	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
	"github.com/JaimeStill/promptiverse/pkg/schema"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, blob storage, and style schema validation.
// Storage is nil when no storage account is configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Schemas   *schema.Registry
}

// New creates an Infrastructure from the application configuration.
// The schema registry is loaded immediately and a load failure is returned
// as an error; other systems are initialized but not started.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(&cfg.Log, os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	switch {
	case errors.Is(err, storage.ErrDisabled):
		logger.Info("storage not configured")
		store = nil
	case err != nil:
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	registry, err := LoadRegistry(ctx, &cfg.Schema, store)
	if err != nil {
		return nil, fmt.Errorf("schema init failed: %w", err)
	}
	logger.Info(
		"style schema loaded",
		"source", cfg.Schema.Source(),
		"name", registry.Name(),
		"version", registry.Version(),
	)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Schemas:   registry,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination,
// and readiness requires a live database connection.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	i.Lifecycle.Require(i.Database)

	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}
