package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "cv_data.json")
	require.NoError(t, os.WriteFile(dataFile, []byte("{}"), 0o644))

	path := writeConfig(t, `{
  "data": "`+dataFile+`",
  "style": "industry",
  "format": "pdf",
  "experience_limit": 3,
  "pdf_no_sandbox": true
}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, dataFile, cfg.Data)
	assert.Equal(t, "industry", cfg.Style)
	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, 3, cfg.ExperienceLimit)
	assert.True(t, cfg.PDFNoSandbox)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(os.TempDir(), "definitely-absent-config.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{broken`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config is valid", Config{}, false},
		{"negative experience limit", Config{ExperienceLimit: -1}, true},
		{"negative publications limit", Config{PublicationsLimit: -2}, true},
		{"negative fetch delay", Config{FetchDelay: -1}, true},
		{"missing data file", Config{Data: "/nonexistent/cv_data.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Style: "industry", ExperienceLimit: 3}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "industry", merged.Style, "explicit value kept")
	assert.Equal(t, 3, merged.ExperienceLimit)
	assert.Equal(t, "cv_data.json", merged.Data, "empty fields filled from defaults")
	assert.Equal(t, "markdown", merged.Format)
	assert.Equal(t, "applications.db", merged.LedgerPath)
	assert.Equal(t, 3, merged.FetchDelay)
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()

	assert.Equal(t, "research", defaults.Style)
	assert.Equal(t, "output", defaults.OutputDir)
	assert.Equal(t, "publication_metrics.json", defaults.MetricsCache)
}
