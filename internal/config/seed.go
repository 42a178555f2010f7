package config

import (
	"os"
	"strconv"
)

const EnvSeedOnStartup = "PROMPTIVERSE_SEED_ON_STARTUP"

// SeedConfig controls loading of the curated style templates.
// An overlay cannot switch OnStartup back off; use the environment variable.
type SeedConfig struct {
	OnStartup bool `toml:"on_startup"`
}

// Finalize applies environment variable overrides.
func (c *SeedConfig) Finalize() error {
	if v := os.Getenv(EnvSeedOnStartup); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.OnStartup = b
		}
	}
	return nil
}

// Merge enables OnStartup when the overlay enables it.
func (c *SeedConfig) Merge(overlay *SeedConfig) {
	if overlay.OnStartup {
		c.OnStartup = true
	}
}
