package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/JaimeStill/promptiverse/pkg/formatting"
	"github.com/JaimeStill/promptiverse/pkg/middleware"
	"github.com/JaimeStill/promptiverse/pkg/openapi"
	"github.com/JaimeStill/promptiverse/pkg/pagination"
)

const (
	EnvAPIBasePath    = "PROMPTIVERSE_API_BASE_PATH"
	EnvAPIMaxBodySize = "PROMPTIVERSE_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTIVERSE_CORS_ENABLED",
	Origins:          "PROMPTIVERSE_CORS_ORIGINS",
	AllowedMethods:   "PROMPTIVERSE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTIVERSE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTIVERSE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTIVERSE_CORS_MAX_AGE",
}

var stylesPaginationEnv = &pagination.ConfigEnv{
	DefaultLimit: "PROMPTIVERSE_STYLES_DEFAULT_LIMIT",
	MaxLimit:     "PROMPTIVERSE_STYLES_MAX_LIMIT",
}

var promptsPaginationEnv = &pagination.ConfigEnv{
	DefaultLimit: "PROMPTIVERSE_PROMPTS_DEFAULT_LIMIT",
	MaxLimit:     "PROMPTIVERSE_PROMPTS_MAX_LIMIT",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "PROMPTIVERSE_OPENAPI_TITLE",
	Description: "PROMPTIVERSE_OPENAPI_DESCRIPTION",
}

// PaginationConfig holds the listing window bounds of each catalog.
type PaginationConfig struct {
	Styles  pagination.Config `toml:"styles"`
	Prompts pagination.Config `toml:"prompts"`
}

// APIConfig holds API routing, request limits, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize formatting.ByteSize   `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  PaginationConfig      `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Styles.Finalize(stylesPaginationEnv); err != nil {
		return fmt.Errorf("pagination.styles: %w", err)
	}
	if err := c.Pagination.Prompts.Finalize(promptsPaginationEnv); err != nil {
		return fmt.Errorf("pagination.prompts: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != 0 {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Styles.Merge(&overlay.Pagination.Styles)
	c.Pagination.Prompts.Merge(&overlay.Pagination.Prompts)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

// defaultOrigins lists the local development front ends admitted when CORS
// is enabled without an origin list.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8000",
	"http://127.0.0.1:3000",
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == 0 {
		c.MaxBodySize = 1 << 20
	}
	if c.Pagination.Styles.DefaultLimit == 0 {
		c.Pagination.Styles.DefaultLimit = 50
	}
	if c.CORS.Origins == nil {
		c.CORS.Origins = slices.Clone(defaultOrigins)
	}
}

func (c *APIConfig) loadEnv() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		if err := c.MaxBodySize.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvAPIMaxBodySize, err)
		}
	}
	return nil
}
