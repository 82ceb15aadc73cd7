package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/storage/sqlite/migrations"
)

// Fixed keys of the persisted client state. They match the storage keys the
// backend's reference web client uses, so the semantics stay recognizable.
const (
	keyIngestionTasks   = "ingestionTasks"
	keySettings         = "settings"
	keyFailedDocsPrefix = "failedDocs:"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository. Client state
// is stored as JSON values in a key/value table.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) getValue(ctx context.Context, key string, v interface{}) error {
	var raw []byte
	query := `SELECT value FROM client_state WHERE key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("key %s: %w", key, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not read key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("could not unmarshal key %s: %w", key, err)
	}

	return nil
}

func (r *Repository) setValue(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal key %s: %w", key, err)
	}

	query := `
		INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, raw, time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("could not write key %s: %w", key, err)
	}

	return nil
}

// LoadTasks returns the persisted ingestion task list.
func (r *Repository) LoadTasks(ctx context.Context) ([]model.IngestionTask, error) {
	var tasks []model.IngestionTask
	err := r.getValue(ctx, keyIngestionTasks, &tasks)
	if errors.Is(err, model.ErrNotFound) {
		return []model.IngestionTask{}, nil
	}
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// SaveTasks replaces the persisted ingestion task list.
func (r *Repository) SaveTasks(ctx context.Context, tasks []model.IngestionTask) error {
	if tasks == nil {
		tasks = []model.IngestionTask{}
	}
	return r.setValue(ctx, keyIngestionTasks, tasks)
}

// Settings returns the persisted application settings.
func (r *Repository) Settings(ctx context.Context) (*model.Settings, error) {
	s := &model.Settings{}
	if err := r.getValue(ctx, keySettings, s); err != nil {
		return nil, err
	}

	return s, nil
}

// SaveSettings replaces the persisted application settings.
func (r *Repository) SaveSettings(ctx context.Context, s model.Settings) error {
	return r.setValue(ctx, keySettings, s)
}

// FailedDocuments returns the persisted failed documents of a namespace.
func (r *Repository) FailedDocuments(ctx context.Context, namespace string) ([]model.FailedDocument, error) {
	var docs []model.FailedDocument
	err := r.getValue(ctx, keyFailedDocsPrefix+namespace, &docs)
	if errors.Is(err, model.ErrNotFound) {
		return []model.FailedDocument{}, nil
	}
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// SaveFailedDocuments replaces the failed documents of a namespace.
func (r *Repository) SaveFailedDocuments(ctx context.Context, namespace string, docs []model.FailedDocument) error {
	if docs == nil {
		docs = []model.FailedDocument{}
	}
	return r.setValue(ctx, keyFailedDocsPrefix+namespace, docs)
}
