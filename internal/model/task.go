package model

import (
	"fmt"
	"time"
)

// TaskState represents the backend-reported state of an ingestion task.
type TaskState string

const (
	// TaskStatePending indicates the ingestion job is still running.
	TaskStatePending TaskState = "PENDING"
	// TaskStateFinished indicates the ingestion job ended (possibly with
	// per-document failures, check the task result).
	TaskStateFinished TaskState = "FINISHED"
	// TaskStateFailed indicates the ingestion job failed as a whole.
	TaskStateFailed TaskState = "FAILED"
	// TaskStateUnknown indicates the backend could not determine the job
	// state (e.g. expired or unknown task id).
	TaskStateUnknown TaskState = "UNKNOWN"
)

// Terminal reports whether a state admits no further transitions.
func (s TaskState) Terminal() bool {
	return s == TaskStateFinished || s == TaskStateFailed || s == TaskStateUnknown
}

// Valid reports whether the state is one of the known task states.
func (s TaskState) Valid() bool {
	return s == TaskStatePending || s.Terminal()
}

// IngestionTask represents one asynchronous document-ingestion job tracked
// by the client.
type IngestionTask struct {
	ID            string           `json:"id"`
	NamespaceName string           `json:"namespace_name"`
	State         TaskState        `json:"state"`
	CreatedAt     time.Time        `json:"created_at"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	Documents     []string         `json:"documents,omitempty"`
	Result        *IngestionResult `json:"result,omitempty"`
	Read          bool             `json:"read"`
}

// IngestionResult is the structured outcome of an ingestion task as
// reported by the backend.
type IngestionResult struct {
	Message          string                   `json:"message,omitempty"`
	TotalDocuments   int                      `json:"total_documents"`
	Documents        []UploadedDocument       `json:"documents"`
	FailedDocuments  []FailedDocument         `json:"failed_documents"`
	ValidationErrors []map[string]interface{} `json:"validation_errors,omitempty"`
}

// UploadedDocument is a document the backend ingested successfully.
type UploadedDocument struct {
	DocumentName string                 `json:"document_name"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// FailedDocument is a document the backend could not ingest.
type FailedDocument struct {
	DocumentName string `json:"document_name"`
	ErrorMessage string `json:"error_message"`
}

// TaskOutcome is the user-facing classification of a task, derived from its
// state and per-document result counts.
type TaskOutcome string

const (
	TaskOutcomePending   TaskOutcome = "pending"
	TaskOutcomeCompleted TaskOutcome = "completed"
	// TaskOutcomePartial means the job finished but some documents failed
	// while others succeeded.
	TaskOutcomePartial TaskOutcome = "partially completed"
	TaskOutcomeFailed  TaskOutcome = "failed"
	TaskOutcomeUnknown TaskOutcome = "unknown"
)

// Outcome classifies the task. A FINISHED task with a mix of succeeded and
// failed documents is partially completed, with only failures it is failed,
// otherwise completed.
func (t IngestionTask) Outcome() TaskOutcome {
	switch t.State {
	case TaskStatePending:
		return TaskOutcomePending
	case TaskStateFailed:
		return TaskOutcomeFailed
	case TaskStateUnknown:
		return TaskOutcomeUnknown
	}

	if t.Result == nil {
		return TaskOutcomeCompleted
	}

	succeeded := len(t.Result.Documents)
	failed := len(t.Result.FailedDocuments)
	switch {
	case failed == 0:
		return TaskOutcomeCompleted
	case succeeded == 0:
		return TaskOutcomeFailed
	default:
		return TaskOutcomePartial
	}
}

// SortTime is the timestamp used for ordering tasks: completion time for
// completed tasks, creation time for pending ones.
func (t IngestionTask) SortTime() time.Time {
	if t.State.Terminal() && t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.CreatedAt
}

// Validate validates the task.
func (t *IngestionTask) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required: %w", ErrNotValid)
	}
	if t.NamespaceName == "" {
		return fmt.Errorf("task namespace name is required: %w", ErrNotValid)
	}
	if !t.State.Valid() {
		return fmt.Errorf("invalid task state %q: %w", t.State, ErrNotValid)
	}

	return nil
}
