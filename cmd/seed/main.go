package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/promptiverse/internal/config"
	"github.com/JaimeStill/promptiverse/internal/infrastructure"
	"github.com/JaimeStill/promptiverse/internal/seed"
	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/storage"
	"github.com/JaimeStill/promptiverse/schemas"
)

func main() {
	var (
		publish   = flag.String("publish-schema", "", "Upload the embedded style schema to this blob key before seeding")
		overwrite = flag.Bool("overwrite", false, "Replace an existing blob when publishing the schema")
		skip      = flag.Bool("skip-templates", false, "Do not install the built-in style templates")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := infrastructure.NewLogger(&cfg.Log, os.Stderr)

	if *publish != "" {
		if err := publishSchema(ctx, cfg, logger, *publish, *overwrite); err != nil {
			log.Fatal("publish schema failed: ", err)
		}
	}

	if *skip {
		return
	}

	if err := seedTemplates(ctx, cfg); err != nil {
		log.Fatal("seed failed: ", err)
	}
}

func publishSchema(ctx context.Context, cfg *config.Config, logger *slog.Logger, key string, overwrite bool) error {
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return err
	}

	if err := store.EnsureContainer(ctx); err != nil {
		return err
	}

	exists, err := store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists && !overwrite {
		logger.Info("style schema already published", "key", key)
		return nil
	}

	f, err := schemas.FS().Open(schemas.StyleProfile)
	if err != nil {
		return fmt.Errorf("open embedded schema: %w", err)
	}
	defer f.Close()

	if err := store.Upload(ctx, key, f, "application/schema+json"); err != nil {
		return err
	}

	logger.Info("style schema published", "name", schemas.StyleProfile, "key", key)
	return nil
}

func seedTemplates(ctx context.Context, cfg *config.Config) error {
	infra, err := infrastructure.New(ctx, cfg)
	if err != nil {
		return err
	}

	if err := infra.Start(); err != nil {
		return err
	}
	defer infra.Lifecycle.Shutdown(cfg.Server.ShutdownTimeoutDuration())

	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		return err
	}

	logger := infra.Logger.With("system", "seed")
	sys := styles.New(
		styles.NewRepository(infra.Database.Connection()),
		infra.Schemas,
		logger,
		cfg.API.Pagination.Styles,
	)

	_, err = seed.Run(ctx, sys, logger)
	return err
}
