package storage

import (
	"context"

	"github.com/pinecone-io/ragcli/internal/model"
)

// TaskRepository persists the full ingestion task list so a new process run
// reconstructs the same tasks with the same read/state/completion values.
// The list is stored as a whole under a fixed key, mirroring every store
// mutation.
type TaskRepository interface {
	// LoadTasks returns the persisted task list, empty when nothing was
	// ever saved.
	LoadTasks(ctx context.Context) ([]model.IngestionTask, error)

	// SaveTasks replaces the persisted task list.
	SaveTasks(ctx context.Context, tasks []model.IngestionTask) error
}

// SettingsRepository persists the application settings as a single record.
type SettingsRepository interface {
	// Settings returns the persisted settings, model.ErrNotFound when the
	// user never saved any.
	Settings(ctx context.Context) (*model.Settings, error)

	// SaveSettings replaces the persisted settings.
	SaveSettings(ctx context.Context, s model.Settings) error
}

// FailedDocumentRepository persists per-namespace failed-document lists.
type FailedDocumentRepository interface {
	// FailedDocuments returns the persisted failed documents of a
	// namespace, empty when none were recorded.
	FailedDocuments(ctx context.Context, namespace string) ([]model.FailedDocument, error)

	// SaveFailedDocuments replaces the failed documents of a namespace.
	SaveFailedDocuments(ctx context.Context, namespace string, docs []model.FailedDocument) error
}

// Repository groups all the local persistence used by the client.
type Repository interface {
	TaskRepository
	SettingsRepository
	FailedDocumentRepository
}
