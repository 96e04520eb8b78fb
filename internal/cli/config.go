package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

// Config holds settings loaded from a TOML config file. Every field is
// optional; command-line flags take precedence, and pipeline defaults cover
// the rest.
type Config struct {
	Scheme  string      `toml:"scheme"`
	Style   string      `toml:"style"`
	Width   int         `toml:"width"`
	Height  int         `toml:"height"`
	OutDir  string      `toml:"out_dir"`
	Workers int         `toml:"workers"`
	Cache   CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	// RedisURL is the redis backend's connection string.
	RedisURL string `toml:"redis_url"`
}

// loadConfig reads the TOML config at path. An empty path falls back to the
// default location, which is allowed to be absent; an explicit path is not.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return &Config{}, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return &Config{}, nil
		}
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return &cfg, nil
}

// defaultConfigPath returns the XDG config file location
// (~/.config/artkathon/config.toml).
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// apply copies config file settings into options where no flag set a value.
func (c *Config) apply(opts *pipeline.Options) {
	if opts.Scheme == "" {
		opts.Scheme = c.Scheme
	}
	if opts.Style == "" {
		opts.Style = c.Style
	}
	if opts.Width == 0 {
		opts.Width = c.Width
	}
	if opts.Height == 0 {
		opts.Height = c.Height
	}
	if opts.Workers == 0 {
		opts.Workers = c.Workers
	}
	if opts.OutDir == "" {
		opts.OutDir = c.OutDir
	}
}

// configKey is the context key for the loaded config.
const configKey ctxKey = 1

// withConfig returns a new context with the config attached.
func withConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, or an empty config.
func configFromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey).(*Config); ok {
		return c
	}
	return &Config{}
}
