// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Data         string `json:"data,omitempty"`          // Path to the CV data file
	OutputDir    string `json:"output_dir,omitempty"`    // Directory for rendered artifacts
	LedgerPath   string `json:"ledger_path,omitempty"`   // Path to the application ledger database
	MetricsCache string `json:"metrics_cache,omitempty"` // Path to the metrics cache file

	// Rendering defaults
	Style             string   `json:"style,omitempty"`              // Default style tag
	Format            string   `json:"format,omitempty"`             // Default output format
	Sections          []string `json:"sections,omitempty"`           // Default explicit section list
	ExperienceLimit   int      `json:"experience_limit,omitempty"`   // Default experience entry limit
	PublicationsLimit int      `json:"publications_limit,omitempty"` // Default publication entry limit

	// Collaborators
	OrcidID      string `json:"orcid_id,omitempty"`       // ORCID iD for imports
	ScholarID    string `json:"scholar_id,omitempty"`     // Google Scholar profile ID
	FetchDelay   int    `json:"fetch_delay,omitempty"`    // Seconds between metric fetches
	PDFNoSandbox bool   `json:"pdf_no_sandbox,omitempty"` // Run Chrome without sandbox

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration used when neither a
// config file nor a flag provides a value.
func Defaults() Config {
	return Config{
		Data:         "cv_data.json",
		OutputDir:    "output",
		LedgerPath:   "applications.db",
		MetricsCache: "publication_metrics.json",
		Style:        "research",
		Format:       "markdown",
		FetchDelay:   3,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.ExperienceLimit < 0 {
		return fmt.Errorf("config error: 'experience_limit' must be non-negative")
	}
	if c.PublicationsLimit < 0 {
		return fmt.Errorf("config error: 'publications_limit' must be non-negative")
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("config error: 'fetch_delay' must be non-negative")
	}

	if c.Data != "" {
		if _, err := os.Stat(c.Data); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.Data)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Data == "" {
		result.Data = defaults.Data
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LedgerPath == "" {
		result.LedgerPath = defaults.LedgerPath
	}
	if result.MetricsCache == "" {
		result.MetricsCache = defaults.MetricsCache
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if len(result.Sections) == 0 {
		result.Sections = defaults.Sections
	}
	if result.OrcidID == "" {
		result.OrcidID = defaults.OrcidID
	}
	if result.ScholarID == "" {
		result.ScholarID = defaults.ScholarID
	}

	if result.ExperienceLimit == 0 {
		result.ExperienceLimit = defaults.ExperienceLimit
	}
	if result.PublicationsLimit == 0 {
		result.PublicationsLimit = defaults.PublicationsLimit
	}
	if result.FetchDelay == 0 {
		result.FetchDelay = defaults.FetchDelay
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
