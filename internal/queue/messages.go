// Package queue runs batch ranking jobs delivered over RabbitMQ.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/talentsphere/internal/types"
)

// Job status values published on the updates exchange.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var validate = validator.New()

// JobDocument points at one resume in object storage.
type JobDocument struct {
	Name      string `json:"name"`
	ObjectKey string `json:"object_key" validate:"required"`
}

// RankJob asks a worker to analyze and rank a set of stored resumes.
type RankJob struct {
	JobID     uuid.UUID     `json:"job_id"`
	Keywords  []string      `json:"keywords" validate:"required,min=1,dive,required"`
	Steps     string        `json:"steps,omitempty"`
	Documents []JobDocument `json:"documents" validate:"required,min=1,dive"`
}

// Validate checks the job's required fields.
func (j *RankJob) Validate() error {
	if j.JobID == uuid.Nil {
		return fmt.Errorf("job_id is required")
	}
	return validate.Struct(j)
}

// RankUpdate reports a job's progress. Ranked is set only when the job completes.
type RankUpdate struct {
	JobID     uuid.UUID               `json:"job_id"`
	Status    string                  `json:"status"`
	Message   string                  `json:"message"`
	Ranked    []types.RankedCandidate `json:"ranked,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

// RoutingKey is the topic key updates for this job are published under.
func (u RankUpdate) RoutingKey() string {
	return "rank." + u.JobID.String()
}

// DecodeJob parses and validates a message body.
func DecodeJob(body []byte) (*RankJob, error) {
	var job RankJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to decode rank job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return &job, fmt.Errorf("invalid rank job: %w", err)
	}
	return &job, nil
}
