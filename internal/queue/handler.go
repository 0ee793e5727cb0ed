package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/batch"
	"github.com/jonathan/talentsphere/internal/types"
)

// downloadAttempts bounds retries of a single object download.
const downloadAttempts = 3

// Publisher sends job progress updates.
type Publisher interface {
	Publish(ctx context.Context, update RankUpdate) error
}

// Handler runs one rank job end to end.
type Handler struct {
	processor *batch.Processor
	store     batch.ObjectStore
	publisher Publisher
	now       func() time.Time
}

// NewHandler wires a processor, the store resumes are fetched from, and the update publisher.
func NewHandler(processor *batch.Processor, store batch.ObjectStore, publisher Publisher) *Handler {
	return &Handler{
		processor: processor,
		store:     &retryingStore{store: store},
		publisher: publisher,
		now:       time.Now,
	}
}

// Handle decodes a message body, ranks its documents and publishes the outcome.
// The returned error describes why the job failed; a failed update has already
// been published for it.
func (h *Handler) Handle(ctx context.Context, body []byte) error {
	job, err := DecodeJob(body)
	if err != nil {
		jobID := uuid.Nil
		if job != nil {
			jobID = job.JobID
		}
		h.publish(ctx, jobID, StatusFailed, "invalid job", nil)
		return err
	}

	opts := analysis.BatchOptions()
	if job.Steps != "" {
		if opts, err = analysis.ParseSteps(job.Steps); err != nil {
			h.publish(ctx, job.JobID, StatusFailed, err.Error(), nil)
			return err
		}
	}

	log.Printf("[worker] job %s: ranking %d documents", job.JobID, len(job.Documents))
	h.publish(ctx, job.JobID, StatusProcessing, "analysis started", nil)

	docs := make([]batch.Document, 0, len(job.Documents))
	for _, d := range job.Documents {
		docs = append(docs, batch.ObjectDocument{Key: d.ObjectKey, DisplayName: d.Name, Store: h.store})
	}

	result, err := h.processor.Run(ctx, docs, job.Keywords, opts)
	if err != nil {
		h.publish(ctx, job.JobID, StatusFailed, "analysis failed", nil)
		return fmt.Errorf("job %s: %w", job.JobID, err)
	}

	h.publish(ctx, job.JobID, StatusCompleted, "analysis completed", result.Ranked)
	log.Printf("[worker] job %s: completed", job.JobID)
	return nil
}

func (h *Handler) publish(ctx context.Context, jobID uuid.UUID, status, message string, ranked []types.RankedCandidate) {
	update := RankUpdate{
		JobID:     jobID,
		Status:    status,
		Message:   message,
		Ranked:    ranked,
		Timestamp: h.now(),
	}
	if err := h.publisher.Publish(ctx, update); err != nil {
		log.Printf("[worker] job %s: failed to publish %s update: %v", jobID, status, err)
	}
}

// retryingStore retries each download up to downloadAttempts times.
type retryingStore struct {
	store batch.ObjectStore
}

func (s *retryingStore) Download(ctx context.Context, key string) ([]byte, error) {
	return retry(ctx, downloadAttempts, func() ([]byte, error) {
		return s.store.Download(ctx, key)
	})
}
