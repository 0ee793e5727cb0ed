package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/queue"
	"github.com/jonathan/talentsphere/internal/storage"
)

var submitCmd = &cobra.Command{
	Use:   "submit <resume>...",
	Short: "Upload resumes and queue a batch ranking job",
	Long: `Uploads each resume to object storage under <prefix>/<job_id>/ and publishes a
ranking job for the worker. Prints the job id; results arrive on the updates
exchange under rank.<job_id>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

var (
	submitKeywords string
	submitSteps    string
	submitPrefix   string
)

func init() {
	submitCmd.Flags().StringVarP(&submitKeywords, "keywords", "k", "", "Comma-separated job keywords (required)")
	submitCmd.Flags().StringVarP(&submitSteps, "steps", "s", "", "Steps or preset (default \"batch\")")
	submitCmd.Flags().StringVar(&submitPrefix, "prefix", "resumes", "Object key prefix")
	rootCmd.AddCommand(submitCmd)
}

// jobObjectKey is the storage key of one uploaded resume.
func jobObjectKey(prefix string, jobID uuid.UUID, file string) string {
	return path.Join(prefix, jobID.String(), filepath.Base(file))
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	keywordsFlag(cmd, submitKeywords, &cfg)
	if cmd.Flags().Changed("steps") {
		cfg.Steps = submitSteps
	}

	job := &queue.RankJob{
		JobID:    uuid.New(),
		Keywords: cfg.Keywords,
		Steps:    cfg.Steps,
	}
	for _, file := range args {
		job.Documents = append(job.Documents, queue.JobDocument{
			Name:      filepath.Base(file),
			ObjectKey: jobObjectKey(submitPrefix, job.JobID, file),
		})
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}

	storageCfg, err := config.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	queueCfg, err := config.NewQueueConfig()
	if err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	objects, err := storage.NewClient(cmd.Context(), storageCfg)
	if err != nil {
		return err
	}
	for i, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		key := job.Documents[i].ObjectKey
		if err := objects.Upload(cmd.Context(), key, data, storage.ContentType(filepath.Ext(file))); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Uploaded %s to %s/%s\n", file, objects.Bucket(), key)
	}

	broker, err := queue.Dial(queueCfg)
	if err != nil {
		return err
	}
	defer func() { _ = broker.Close() }()

	if err := broker.Submit(cmd.Context(), job); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), job.JobID.String())
	return nil
}
