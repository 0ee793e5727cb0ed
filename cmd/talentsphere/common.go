package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/db"
	"github.com/jonathan/talentsphere/internal/parsing"
)

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output to stderr")
}

// loadConfig reads --config when set. Commands apply their own flag overrides
// before merging defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}

// keywordsFlag overrides the configured keywords when --keywords was given.
func keywordsFlag(cmd *cobra.Command, value string, cfg *config.Config) {
	if cmd.Flags().Changed("keywords") {
		cfg.Keywords = parsing.SplitKeywords(value)
	}
}

// openStore opens Postgres when a database URL is configured and the local
// SQLite store otherwise.
func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	store, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

// verboseOut is where human readable detail goes; it is discarded unless verbose.
func verboseOut(cmd *cobra.Command, cfg config.Config) io.Writer {
	if cfg.Verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}
