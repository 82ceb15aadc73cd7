package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. Useful
// for tests and ephemeral runs.
type Repository struct {
	tasks      []model.IngestionTask
	settings   *model.Settings
	failedDocs map[string][]model.FailedDocument
	mu         sync.RWMutex
	logger     log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		failedDocs: map[string][]model.FailedDocument{},
		logger:     cfg.Logger,
	}, nil
}

// LoadTasks returns the persisted ingestion task list.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.IngestionTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.IngestionTask, len(r.tasks))
	copy(tasks, r.tasks)

	return tasks, nil
}

// SaveTasks replaces the persisted ingestion task list.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.IngestionTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make([]model.IngestionTask, len(tasks))
	copy(r.tasks, tasks)

	r.logger.Debugf("Saved %d tasks", len(tasks))

	return nil
}

// Settings returns the persisted application settings.
func (r *Repository) Settings(ctx context.Context) (*model.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, fmt.Errorf("settings: %w", model.ErrNotFound)
	}

	s := *r.settings
	return &s, nil
}

// SaveSettings replaces the persisted application settings.
func (r *Repository) SaveSettings(ctx context.Context, s model.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = &s

	return nil
}

// FailedDocuments returns the persisted failed documents of a namespace.
func (r *Repository) FailedDocuments(ctx context.Context, namespace string) ([]model.FailedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]model.FailedDocument, len(r.failedDocs[namespace]))
	copy(docs, r.failedDocs[namespace])

	return docs, nil
}

// SaveFailedDocuments replaces the failed documents of a namespace.
func (r *Repository) SaveFailedDocuments(ctx context.Context, namespace string, docs []model.FailedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds := make([]model.FailedDocument, len(docs))
	copy(ds, docs)
	r.failedDocs[namespace] = ds

	return nil
}
