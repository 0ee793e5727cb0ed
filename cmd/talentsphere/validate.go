package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON result against the bundled schema",
	Long: `Checks an analysis record (--kind record) or a batch result (--kind batch).
The output of analyze is accepted for --kind record: its "record" field is checked.`,
	RunE: runValidate,
}

var (
	validateKind string
	validateJSON string
)

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", schemas.KindRecord, "Schema to validate against: record or batch")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateJSON)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", validateJSON)
		}
		return fmt.Errorf("failed to read %s: %w", validateJSON, err)
	}

	if validateKind == schemas.KindRecord {
		var wrapped struct {
			Record json.RawMessage `json:"record"`
		}
		if json.Unmarshal(data, &wrapped) == nil && len(wrapped.Record) > 0 {
			data = wrapped.Record
		}
	}

	if err := schemas.ValidateDocument(validateKind, data); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s is a valid %s\n", validateJSON, validateKind)
	return nil
}
