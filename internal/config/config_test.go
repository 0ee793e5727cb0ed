package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"keywords": ["Python", "SQL"],
		"steps": "recruiter",
		"workers": 8,
		"company_name": "TechGlobal",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"Python", "SQL"}, cfg.Keywords)
	assert.Equal(t, "recruiter", cfg.Steps)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "TechGlobal", cfg.CompanyName)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Keywords: []string{"Go"}, Steps: "contact,audit", Workers: 2}, ""},
		{"empty is valid", Config{}, ""},
		{"negative workers", Config{Workers: -1}, "workers"},
		{"unknown step", Config{Steps: "contact,astrology"}, "astrology"},
		{"blank keyword", Config{Keywords: []string{"Go", "  "}}, "keyword 1 is blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Keywords:    []string{"Python"},
		Steps:       "seeker",
		Workers:     4,
		CompanyName: "TechGlobal",
		SQLitePath:  "/var/lib/talentsphere.db",
	}

	partial := Config{
		Steps:   "recruiter",
		JobRole: "Data Engineer",
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "recruiter", merged.Steps)
	assert.Equal(t, "Data Engineer", merged.JobRole)

	assert.Equal(t, []string{"Python"}, merged.Keywords)
	assert.Equal(t, 4, merged.Workers)
	assert.Equal(t, "TechGlobal", merged.CompanyName)
	assert.Equal(t, "/var/lib/talentsphere.db", merged.SQLitePath)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Keywords: []string{"Go"}}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, []string{"Go"}, merged.Keywords)
	assert.Equal(t, DefaultSQLitePath, merged.SQLitePath)
	assert.Zero(t, merged.Workers)
}
