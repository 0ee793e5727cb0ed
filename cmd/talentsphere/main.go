// Package main provides the talentsphere CLI: resume analysis, batch ranking,
// the HTTP API server and the queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentsphere",
	Short: "Resume analysis and candidate ranking",
	Long: `TalentSphere scores resumes against a job's keywords, audits their structure,
and ranks batches of candidates into a leaderboard. It runs as a CLI, an HTTP API
server, or a RabbitMQ worker.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
