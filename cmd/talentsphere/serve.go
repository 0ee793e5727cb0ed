package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/server"
)

var (
	servePort      int
	serveWorkers   int
	serveMaxUpload int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing resume analysis, batch ranking, accounts and scan history.
Accounts and scans are stored in PostgreSQL when DATABASE_URL is set, otherwise in a local SQLite file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().IntVarP(&serveWorkers, "workers", "w", 0, "Documents analyzed at once per ranking request")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload", server.DefaultMaxUploadBytes, "Maximum upload request size in bytes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = serveWorkers
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           servePort,
		Store:          store,
		Workers:        cfg.Workers,
		MaxUploadBytes: serveMaxUpload,
	})
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
