package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/guidance"
	"github.com/jonathan/talentsphere/internal/ingestion"
	"github.com/jonathan/talentsphere/internal/observability"
	"github.com/jonathan/talentsphere/internal/schemas"
	"github.com/jonathan/talentsphere/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume>",
	Short: "Analyze one resume against a keyword list",
	Long: `Extracts the text of a PDF, DOCX or plain text resume and runs the selected
analysis steps. Keyword matching always runs. Steps default to the "seeker" preset.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeKeywords string
	analyzeSteps    string
	analyzeCompany  string
	analyzeEmail    bool
	analyzeOutput   string
	analyzeSave     bool
	analyzeUsername string
	analyzeJobRole  string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeKeywords, "keywords", "k", "", "Comma-separated job keywords, e.g. \"Python, SQL, AWS\"")
	analyzeCmd.Flags().StringVarP(&analyzeSteps, "steps", "s", "", "Steps or preset: seeker, recruiter, batch, all, or a list like contact,audit")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name used in the email draft")
	analyzeCmd.Flags().BoolVar(&analyzeEmail, "email", false, "Include a recruiter email draft")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the JSON result to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the score to the scan history of --username")
	analyzeCmd.Flags().StringVar(&analyzeUsername, "username", "", "Account the scan is saved under")
	analyzeCmd.Flags().StringVar(&analyzeJobRole, "job-role", "", "Job role stored with the scan")

	rootCmd.AddCommand(analyzeCmd)
}

type analyzeResult struct {
	File       string                `json:"file"`
	Steps      string                `json:"steps"`
	Record     *types.AnalysisRecord `json:"record"`
	Metadata   *ingestion.Metadata   `json:"metadata,omitempty"`
	EmailDraft *types.EmailDraft     `json:"email_draft,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	keywordsFlag(cmd, analyzeKeywords, &cfg)
	if cmd.Flags().Changed("steps") {
		cfg.Steps = analyzeSteps
	}
	if cmd.Flags().Changed("company") {
		cfg.CompanyName = analyzeCompany
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = analyzeOutput
	}
	if cmd.Flags().Changed("job-role") {
		cfg.JobRole = analyzeJobRole
	}
	cfg = cfg.MergeWithDefaults(config.Config{Steps: "seeker"})

	if analyzeSave && analyzeUsername == "" {
		return fmt.Errorf("--username is required with --save")
	}

	opts, err := analysis.ParseSteps(cfg.Steps)
	if err != nil {
		return err
	}

	path := args[0]
	res, err := analysis.New().AnalyzeFile(cmd.Context(), path, cfg.Keywords, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if res.Record.Degraded {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s yielded no usable text\n", path)
	}
	if err := schemas.ValidateRecord(res.Record); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: record failed schema check: %v\n", err)
	}

	out := analyzeResult{
		File:     filepath.Base(path),
		Steps:    opts.String(),
		Record:   res.Record,
		Metadata: res.Metadata,
	}
	if analyzeEmail || cfg.CompanyName != "" {
		draft := guidance.DraftEmail(cfg.CompanyName, res.Record)
		out.EmailDraft = &draft
	}

	printer := observability.NewPrinter(verboseOut(cmd, cfg))
	printer.PrintRecord(out.File, res.Record)
	if opts.Audit {
		printer.PrintAudit(res.Record.AuditReport)
	}
	printer.PrintGuidance(res.Record)
	if out.EmailDraft != nil {
		printer.PrintEmailDraft(*out.EmailDraft)
	}

	if analyzeSave {
		if err := saveScan(cmd, cfg, out.File, res.Record.MatchScore); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeOutput(cmd, cfg.Output, append(data, '\n'))
}

func saveScan(cmd *cobra.Command, cfg config.Config, filename string, score float64) error {
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	scan := &types.Scan{
		Username: analyzeUsername,
		JobRole:  cfg.JobRole,
		Score:    score,
		Filename: filename,
	}
	if err := store.SaveScan(cmd.Context(), scan); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved scan %s for %s\n", scan.ID, scan.Username)
	return nil
}
