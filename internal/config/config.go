// Package config loads the Promptiverse service configuration from
// config.toml, an optional environment overlay, and PROMPTIVERSE_ variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptiverse/pkg/database"
	"github.com/JaimeStill/promptiverse/pkg/schema"
	"github.com/JaimeStill/promptiverse/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvPromptiverseEnv     = "PROMPTIVERSE_ENV"
	EnvPromptiverseVersion = "PROMPTIVERSE_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "PROMPTIVERSE_DB_URL",
	Host:            "PROMPTIVERSE_DB_HOST",
	Port:            "PROMPTIVERSE_DB_PORT",
	Name:            "PROMPTIVERSE_DB_NAME",
	User:            "PROMPTIVERSE_DB_USER",
	Password:        "PROMPTIVERSE_DB_PASSWORD",
	SSLMode:         "PROMPTIVERSE_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTIVERSE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTIVERSE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTIVERSE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTIVERSE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PROMPTIVERSE_STORAGE_CONTAINER_NAME",
	ConnectionString: "PROMPTIVERSE_STORAGE_CONNECTION_STRING",
	ServiceURL:       "PROMPTIVERSE_STORAGE_SERVICE_URL",
}

var schemaEnv = &schema.Env{
	Name:    "PROMPTIVERSE_SCHEMA_NAME",
	Path:    "PROMPTIVERSE_SCHEMA_PATH",
	BlobKey: "PROMPTIVERSE_SCHEMA_BLOB_KEY",
}

// Config is the root configuration for the Promptiverse service.
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	Schema   schema.Config   `toml:"schema"`
	API      APIConfig       `toml:"api"`
	Seed     SeedConfig      `toml:"seed"`
	Log      LogConfig       `toml:"log"`
	Version  string          `toml:"version"`
}

// Env returns the PROMPTIVERSE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptiverseEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads .env and the base config (if present), applies any environment
// overlay, and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration. Variables already set in
// the process environment take precedence over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Schema.Merge(&overlay.Schema)
	c.API.Merge(&overlay.API)
	c.Seed.Merge(&overlay.Seed)
	c.Log.Merge(&overlay.Log)
}

// Finalize applies defaults, environment overrides, and validation to
// every sub-config.
func (c *Config) Finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvPromptiverseVersion); v != "" {
		c.Version = v
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Schema.Finalize(schemaEnv); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if c.Schema.BlobKey != "" && c.Schema.Path == "" && !c.Storage.Enabled() {
		return fmt.Errorf("schema: blob_key %q requires storage to be configured", c.Schema.BlobKey)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Seed.Finalize(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := c.Log.Finalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptiverseEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
