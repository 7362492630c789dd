package main

import (
	"fmt"

	"github.com/jonathan/cv-manager/internal/config"
	"github.com/jonathan/cv-manager/internal/store"
	"github.com/jonathan/cv-manager/internal/types"
)

// loadConfig resolves the effective configuration: built-in defaults,
// overlaid by an optional config file. CLI flags are applied on top by
// each command using the Changed pattern.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// loadRecord loads and schema-validates the CV data file.
func loadRecord(dataPath string) (*types.CVRecord, error) {
	record, err := store.Load(dataPath)
	if err != nil {
		return nil, err
	}
	return record, nil
}
