// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/talentsphere/internal/analysis"
)

// DefaultSQLitePath is where the local account and scan store lives when nothing else is configured.
const DefaultSQLitePath = "talentsphere.db"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Analysis
	Keywords []string `json:"keywords,omitempty"` // Job keywords to match
	Steps    string   `json:"steps,omitempty"`    // Step list or preset (seeker, recruiter, batch, all)
	Workers  int      `json:"workers,omitempty"`  // Documents analyzed at once in batch mode

	// Recruiter
	CompanyName string `json:"company_name,omitempty"` // Used in outreach drafts
	JobRole     string `json:"job_role,omitempty"`     // Stored with scan history

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Local store used when no database URL is set

	// Output
	Output  string `json:"output,omitempty"`  // Path for JSON or CSV output
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
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
// Required fields are checked by the commands after merging with flags.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}

	if c.Steps != "" {
		if _, err := analysis.ParseSteps(c.Steps); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	for i, k := range c.Keywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("config error: keyword %d is blank", i)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Keywords) == 0 {
		result.Keywords = defaults.Keywords
	}
	if result.Steps == "" {
		result.Steps = defaults.Steps
	}
	if result.CompanyName == "" {
		result.CompanyName = defaults.CompanyName
	}
	if result.JobRole == "" {
		result.JobRole = defaults.JobRole
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		if defaults.SQLitePath != "" {
			result.SQLitePath = defaults.SQLitePath
		} else {
			result.SQLitePath = DefaultSQLitePath
		}
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
