package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/promptiverse/internal/config"
)

const baseConfig = `
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "promptiverse"
user = "promptiverse"
password = "promptiverse"
ssl_mode = "disable"

[schema]
name = "image-style-profile.schema.json"

[api]
base_path = "/api"
max_body_size = "2MB"

[api.cors]
enabled = false

[api.pagination.styles]
default_limit = 25
max_limit = 100

[api.openapi]
title = "Catalog"

[log]
level = "debug"
format = "json"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"

[seed]
on_startup = true
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.API.MaxBodySize != 2<<20 {
		t.Errorf("max body size: got %d, want %d", cfg.API.MaxBodySize, 2<<20)
	}
	if cfg.API.Pagination.Styles.DefaultLimit != 25 || cfg.API.Pagination.Styles.MaxLimit != 100 {
		t.Errorf("styles pagination: got %+v", cfg.API.Pagination.Styles)
	}
	if cfg.API.Pagination.Prompts.DefaultLimit != 20 || cfg.API.Pagination.Prompts.MaxLimit != 200 {
		t.Errorf("prompts pagination: got %+v", cfg.API.Pagination.Prompts)
	}
	if cfg.API.OpenAPI.Title != "Catalog" {
		t.Errorf("openapi title: got %s, want Catalog", cfg.API.OpenAPI.Title)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format: got %s, want json", cfg.Log.Format)
	}
	if cfg.Seed.OnStartup {
		t.Error("seed on_startup should default to false")
	}
	if cfg.Schema.Source() != "embedded" {
		t.Errorf("schema source: got %s, want embedded", cfg.Schema.Source())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Chdir(dir)

	t.Setenv("PROMPTIVERSE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
	if !cfg.Seed.OnStartup {
		t.Error("seed on_startup: overlay should enable it")
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	t.Setenv("PROMPTIVERSE_VERSION", "2.0.0")
	t.Setenv("PROMPTIVERSE_SERVER_PORT", "3000")
	t.Setenv("PROMPTIVERSE_DB_URL", "postgres://u:p@db:5432")
	t.Setenv("PROMPTIVERSE_DB_NAME", "catalog_test")
	t.Setenv("PROMPTIVERSE_API_MAX_BODY_SIZE", "512KB")
	t.Setenv("PROMPTIVERSE_PROMPTS_DEFAULT_LIMIT", "10")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Dsn() != "postgres://u:p@db:5432/catalog_test" {
		t.Errorf("dsn: got %s", cfg.Database.Dsn())
	}
	if cfg.Database.MigrateURL() != "postgres://u:p@db:5432/catalog_test" {
		t.Errorf("migrate url: got %s", cfg.Database.MigrateURL())
	}
	if cfg.API.MaxBodySize != 512<<10 {
		t.Errorf("max body size: got %d, want %d", cfg.API.MaxBodySize, 512<<10)
	}
	if cfg.API.Pagination.Prompts.DefaultLimit != 10 {
		t.Errorf("prompts default limit: got %d, want 10", cfg.API.Pagination.Prompts.DefaultLimit)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "promptiverse" {
		t.Errorf("db name default: got %s, want promptiverse", cfg.Database.Name)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base path default: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySize != 1<<20 {
		t.Errorf("max body size default: got %d, want %d", cfg.API.MaxBodySize, 1<<20)
	}
	if cfg.API.Pagination.Styles.DefaultLimit != 50 {
		t.Errorf("styles default limit: got %d, want 50", cfg.API.Pagination.Styles.DefaultLimit)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default: got %s, want info", cfg.Log.Level)
	}
	if cfg.Storage.Enabled() {
		t.Error("storage should be disabled without credentials")
	}
	if cfg.API.CORS.Enabled {
		t.Error("cors should be disabled by default")
	}
	if len(cfg.API.CORS.Origins) != 3 || cfg.API.CORS.Origins[0] != "http://localhost:3000" {
		t.Errorf("cors origins default: got %v", cfg.API.CORS.Origins)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".env", "PROMPTIVERSE_OPENAPI_TITLE=From Dotenv\n")
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("PROMPTIVERSE_OPENAPI_TITLE") })

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.API.OpenAPI.Title != "From Dotenv" {
		t.Errorf("openapi title: got %s, want From Dotenv", cfg.API.OpenAPI.Title)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		toml string
	}{
		{"bad port", map[string]string{"PROMPTIVERSE_SERVER_PORT": "70000"}, ""},
		{"zero timeout", map[string]string{"PROMPTIVERSE_SERVER_READ_HEADER_TIMEOUT": "0s"}, ""},
		{"bad body size", map[string]string{"PROMPTIVERSE_API_MAX_BODY_SIZE": "huge"}, ""},
		{"bad log format", map[string]string{"PROMPTIVERSE_LOG_FORMAT": "xml"}, ""},
		{"blob schema without storage", nil, "[schema]\nblob_key = \"schemas/style.json\"\n"},
		{"malformed toml", nil, "[server\nport = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.toml != "" {
				writeConfig(t, dir, "config.toml", tt.toml)
			}
			t.Chdir(dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestServerDurations(t *testing.T) {
	cfg, err := config.Parse([]byte("[server]\nread_timeout = \"30s\"\nshutdown_timeout = \"5s\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if got := cfg.Server.ReadTimeoutDuration(); got != 30*time.Second {
		t.Errorf("read timeout: got %v, want 30s", got)
	}
	if got := cfg.Server.ShutdownTimeoutDuration(); got != 5*time.Second {
		t.Errorf("shutdown timeout: got %v, want 5s", got)
	}
	if got := cfg.Server.ReadHeaderTimeoutDuration(); got != 10*time.Second {
		t.Errorf("read header timeout: got %v, want 10s default", got)
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", got)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := config.LogConfig{Level: "warn"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.SlogLevel().String() != "WARN" {
		t.Errorf("level: got %v, want WARN", cfg.SlogLevel())
	}
}
