//go:build windows

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"winproc/pkg/buffered"
)

// config is the optional winproc.yaml. All fields have working defaults; the
// buffer section tunes the growable-retrieval policy for every query whose
// output size is unknown up front.
type config struct {
	Buffer   buffered.Policy `yaml:"buffer"`
	LogLevel string          `yaml:"log_level"`
}

func defaultConfig() config {
	return config{LogLevel: "warn"}
}

// loadConfig reads path, or winproc.yaml next to the binary when path is
// empty. A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		exe, err := os.Executable()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(filepath.Dir(exe), "winproc.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}
