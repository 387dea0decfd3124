// Package config loads layered RQL preset configuration: a global
// config file plus a repo-local one found by walking up from the
// current directory, with local presets taking precedence. Grounded
// in rdump's config.rs layering, expressed in TOML via go-toml/v2.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds named query presets: each preset's value is itself an
// RQL query fragment, ANDed with the user's query when selected (see
// internal/search).
type Config struct {
	Presets map[string]string `toml:"presets"`
}

const (
	globalConfigRelPath = "rql/config.toml"
	localConfigName     = ".rql.toml"
	configDirEnv        = "RQL_CONFIG_DIR"
)

// GlobalConfigPath returns the path to the user's global config file.
// RQL_CONFIG_DIR overrides the platform default config directory,
// primarily for tests.
func GlobalConfigPath() (string, bool) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return filepath.Join(dir, globalConfigRelPath), true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, globalConfigRelPath), true
}

// findLocalConfig walks up from dir looking for a .rql.toml file.
func findLocalConfig(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, localConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load merges the global config with a local .rql.toml discovered by
// walking up from the current directory.
func Load() (*Config, error) {
	merged := &Config{Presets: map[string]string{}}

	if path, ok := GlobalConfigPath(); ok {
		if err := mergeFile(merged, path); err != nil {
			return nil, err
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		if path, ok := findLocalConfig(cwd); ok {
			if err := mergeFile(merged, path); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

func mergeFile(into *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var loaded Config
	if err := toml.Unmarshal(raw, &loaded); err != nil {
		return err
	}
	for name, query := range loaded.Presets {
		into.Presets[name] = query
	}
	return nil
}

// Save writes cfg to the global config file, creating its parent
// directory if needed.
func Save(cfg *Config) error {
	path, ok := GlobalConfigPath()
	if !ok {
		return errors.New("could not determine global config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
