package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileNames are looked up, in order, in the root directory
var DefaultFileNames = []string{".swcfix.hcl", ".swcfix.yaml", ".swcfix.yml", ".swcfix.json"}

// Find returns the first default config file present in dir
func Find(dir string) (string, bool) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// 🎯 Load reads a config file and overlays it on the defaults.
// The format is determined by the file extension (.hcl, .yaml/.yml, .json).
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	parsed, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	parsed.location = path

	cfg := Default()
	cfg.Merge(parsed)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve loads the explicit config path when set, otherwise the first
// default file found in root, otherwise the defaults.
func Resolve(ctx context.Context, explicit string, root string) (*Config, error) {
	if explicit != "" {
		return Load(ctx, explicit)
	}
	if path, ok := Find(root); ok {
		return Load(ctx, path)
	}
	zerolog.Ctx(ctx).Debug().Str("root", root).Msg("no config file found, using defaults")
	return Default(), nil
}
