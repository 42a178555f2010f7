package schema

import (
	"fmt"
	"io/fs"
	"os"
)

// Config selects the schema resource loaded at startup.
// Path wins over BlobKey; with neither set the embedded default is used.
type Config struct {
	Name    string `toml:"name"`
	Path    string `toml:"path"`
	BlobKey string `toml:"blob_key"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Name    string
	Path    string
	BlobKey string
}

// Source reports which kind of resource the config resolves to.
func (c *Config) Source() string {
	switch {
	case c.Path != "":
		return "file"
	case c.BlobKey != "":
		return "blob"
	default:
		return "embedded"
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.BlobKey != "" {
		c.BlobKey = overlay.BlobKey
	}
}

func (c *Config) loadDefaults() {
	if c.Name == "" {
		c.Name = "image-style-profile.schema.json"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.BlobKey != "" {
		if v := os.Getenv(env.BlobKey); v != "" {
			c.BlobKey = v
		}
	}
}

func (c *Config) validate() error {
	if c.Path != "" {
		if _, err := os.Stat(c.Path); err != nil {
			return fmt.Errorf("schema path: %w", err)
		}
	}
	return nil
}

// LoadFS loads a registry from a file in fsys.
func LoadFS(fsys fs.FS, name string) (*Registry, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLoad, name, err)
	}
	defer f.Close()
	return Load(f, name)
}

// LoadFile loads a registry from a file on disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLoad, path, err)
	}
	defer f.Close()
	return Load(f, path)
}
