package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/batch"
	"github.com/jonathan/talentsphere/internal/config"
	"github.com/jonathan/talentsphere/internal/queue"
	"github.com/jonathan/talentsphere/internal/storage"
)

var workerDocWorkers int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume batch ranking jobs from RabbitMQ",
	Long: `Runs a pool of consumers on the ranking queue. Each job's resumes are downloaded
from object storage, analyzed and ranked; progress and the final leaderboard are
published to the updates exchange under rank.<job_id>.

Requires RABBITMQ_URL and the R2_* storage variables.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVar(&workerDocWorkers, "doc-workers", 0, "Documents analyzed at once within a job")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	queueCfg, err := config.NewQueueConfig()
	if err != nil {
		return fmt.Errorf("queue config: %w", err)
	}
	storageCfg, err := config.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	objects, err := storage.NewClient(ctx, storageCfg)
	if err != nil {
		return err
	}

	broker, err := queue.Dial(queueCfg)
	if err != nil {
		return err
	}
	defer func() { _ = broker.Close() }()

	processor := batch.NewProcessor(analysis.New(), workerDocWorkers)
	handler := queue.NewHandler(processor, objects, broker)

	log.Printf("[worker] consuming %s with %d workers", queueCfg.Queue, queueCfg.Workers)
	if err := broker.Consume(ctx, handler); err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() == context.Canceled {
		log.Printf("[worker] shutting down")
	}
	return nil
}
