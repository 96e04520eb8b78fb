package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SW-Perse/artkathon/pkg/pipeline"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
scheme = "wild"
style = "sharp"
width = 1200
workers = 2

[cache]
backend = "file"
dir = "/tmp/render-cache"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scheme != "wild" || cfg.Style != "sharp" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Width != 1200 || cfg.Workers != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/render-cache" {
		t.Errorf("cache cfg = %+v", cfg.Cache)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "shceme = \"wild\"\n")
	if _, err := loadConfig(path); err == nil {
		t.Error("misspelled key should be rejected")
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing config should be an error")
	}
}

func TestLoadConfigDefaultPathAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("absent default config should not error: %v", err)
	}
	if cfg.Scheme != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestConfigApply(t *testing.T) {
	cfg := &Config{Scheme: "wild", Width: 1200, Workers: 3}

	opts := pipeline.Options{Scheme: "very_smooth"}
	cfg.apply(&opts)

	// Flag value wins over config
	if opts.Scheme != "very_smooth" {
		t.Errorf("Scheme = %q", opts.Scheme)
	}
	// Config fills unset values
	if opts.Width != 1200 || opts.Workers != 3 {
		t.Errorf("opts = %+v", opts)
	}
}

func TestConfigFromContext(t *testing.T) {
	cfg := &Config{Scheme: "wild"}
	ctx := withConfig(context.Background(), cfg)

	if got := configFromContext(ctx); got != cfg {
		t.Error("configFromContext should return the attached config")
	}
	if got := configFromContext(context.Background()); got == nil || got.Scheme != "" {
		t.Error("configFromContext without config should return an empty one")
	}
}
