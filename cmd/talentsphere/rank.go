package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/batch"
	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/ingestion"
	"github.com/jonathan/talentsphere/internal/observability"
	"github.com/jonathan/talentsphere/internal/ranking"
	"github.com/jonathan/talentsphere/internal/schemas"
	"github.com/jonathan/talentsphere/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume...]",
	Short: "Rank a batch of resumes into a leaderboard",
	Long: `Analyzes every resume given as an argument or found in --dir and ranks the
candidates by match score. Output is the batch result as JSON, or the leaderboard
as CSV with --format csv.`,
	RunE: runRank,
}

var (
	rankKeywords string
	rankSteps    string
	rankDir      string
	rankWorkers  int
	rankFormat   string
	rankOutput   string
)

func init() {
	rankCmd.Flags().StringVarP(&rankKeywords, "keywords", "k", "", "Comma-separated job keywords")
	rankCmd.Flags().StringVarP(&rankSteps, "steps", "s", "", "Steps or preset (default \"batch\")")
	rankCmd.Flags().StringVarP(&rankDir, "dir", "d", "", "Directory of resumes to rank")
	rankCmd.Flags().IntVarP(&rankWorkers, "workers", "w", 0, "Documents analyzed at once")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "json", "Output format: json or csv")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Write the result to this file instead of stdout")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankFormat != "json" && rankFormat != "csv" {
		return fmt.Errorf("unsupported format %q (want json or csv)", rankFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	keywordsFlag(cmd, rankKeywords, &cfg)
	if cmd.Flags().Changed("steps") {
		cfg.Steps = rankSteps
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = rankWorkers
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = rankOutput
	}
	cfg = cfg.MergeWithDefaults(config.Config{Steps: "batch", Workers: batch.DefaultWorkers})

	opts, err := analysis.ParseSteps(cfg.Steps)
	if err != nil {
		return err
	}

	paths, err := collectResumes(args, rankDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no resumes to rank: pass files or --dir")
	}

	docs := make([]batch.Document, len(paths))
	for i, p := range paths {
		docs[i] = batch.LocalDocument{Path: p}
	}

	processor := batch.NewProcessor(analysis.New(), cfg.Workers)
	var done atomic.Int32
	processor.OnDocument = func(name string, rec *types.AnalysisRecord) {
		n := done.Add(1)
		if cfg.Verbose {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %.1f%%\n", n, len(docs), name, rec.MatchScore)
		}
	}

	result, err := processor.Run(cmd.Context(), docs, cfg.Keywords, opts)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	observability.NewPrinter(verboseOut(cmd, cfg)).PrintLeaderboard(result.Ranked)

	var data []byte
	if rankFormat == "csv" {
		var buf bytes.Buffer
		if err := ranking.WriteCSV(&buf, result.Ranked); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		if err := schemas.ValidateBatch(result); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: batch failed schema check: %v\n", err)
		}
		if data, err = json.MarshalIndent(result, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		data = append(data, '\n')
	}
	return writeOutput(cmd, cfg.Output, data)
}

// collectResumes returns the explicit paths followed by the supported files in
// dir, sorted by name.
func collectResumes(args []string, dir string) ([]string, error) {
	paths := append([]string{}, args...)
	if dir == "" {
		return paths, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ingestion.FormatForPath(e.Name()) != "" {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(found)
	return append(paths, found...), nil
}
