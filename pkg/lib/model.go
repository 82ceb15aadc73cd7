package lib

import (
	"io"
	"time"

	"github.com/pinecone-io/ragcli/internal/model"
)

// Sentinel errors returned by the SDK. Match them with [errors.Is].
var (
	// ErrNotFound means the resource does not exist.
	ErrNotFound = model.ErrNotFound
	// ErrAlreadyExists means a resource with the same name already exists.
	ErrAlreadyExists = model.ErrAlreadyExists
	// ErrNotValid means the input or operation is invalid.
	ErrNotValid = model.ErrNotValid
)

// MetadataType is the type of a namespace metadata field.
type MetadataType string

// Supported metadata field types.
const (
	MetadataString   MetadataType = "string"
	MetadataInteger  MetadataType = "integer"
	MetadataFloat    MetadataType = "float"
	MetadataBoolean  MetadataType = "boolean"
	MetadataArray    MetadataType = "array"
	MetadataDatetime MetadataType = "datetime"
)

// MetadataField is one typed field of a namespace metadata schema.
type MetadataField struct {
	Name        string
	Type        MetadataType
	Description string
}

// NamespaceConfig configures a namespace creation.
type NamespaceConfig struct {
	// Name of the namespace. Must start with a letter and contain only
	// letters, digits, '_' or '-'.
	Name string

	// EmbeddingDimension of the namespace vectors. Default: 2048.
	EmbeddingDimension int

	// MetadataSchema are the custom metadata fields document uploads may set.
	MetadataSchema []MetadataField
}

// Namespace is a named collection of ingested documents.
type Namespace struct {
	Name           string
	NumDocuments   int
	MetadataSchema []MetadataField
}

// Document is a document of a namespace.
type Document struct {
	Name     string
	Metadata map[string]interface{}
}

// UploadDocument is a single file of an upload with raw metadata values,
// validated against the namespace schema before uploading.
type UploadDocument struct {
	Name     string
	Content  io.Reader
	Metadata map[string]string
}

// UploadOpts are the parameters of a document upload.
type UploadOpts struct {
	Namespace string
	Documents []UploadDocument
}

// TaskState is the backend-reported state of an ingestion task.
type TaskState string

// Task states.
const (
	TaskPending  TaskState = TaskState(model.TaskStatePending)
	TaskFinished TaskState = TaskState(model.TaskStateFinished)
	TaskFailed   TaskState = TaskState(model.TaskStateFailed)
	TaskUnknown  TaskState = TaskState(model.TaskStateUnknown)
)

// Task is a tracked ingestion task.
type Task struct {
	ID          string
	Namespace   string
	State       TaskState
	Outcome     string
	Documents   []string
	Read        bool
	CreatedAt   time.Time
	CompletedAt *time.Time

	// Failed are the documents the backend could not ingest, with their
	// error messages. Empty until the task finishes.
	Failed []FailedDocument
}

// FailedDocument is a document the backend could not ingest.
type FailedDocument struct {
	Name  string
	Error string
}

// Settings are the user-tunable model and retrieval parameters.
type Settings = model.Settings

// DefaultSettings returns the settings used when none were ever saved.
func DefaultSettings() Settings {
	return model.DefaultSettings()
}

func newNamespace(ns model.Namespace) Namespace {
	return Namespace{
		Name:           ns.Name,
		NumDocuments:   ns.NumEntities,
		MetadataSchema: newMetadataSchema(ns.MetadataSchema),
	}
}

func newMetadataSchema(schema []model.MetadataField) []MetadataField {
	if schema == nil {
		return nil
	}

	fields := make([]MetadataField, 0, len(schema))
	for _, f := range schema {
		fields = append(fields, MetadataField{
			Name:        f.Name,
			Type:        MetadataType(f.Type),
			Description: f.Description,
		})
	}

	return fields
}

func newTask(t model.IngestionTask) Task {
	task := Task{
		ID:          t.ID,
		Namespace:   t.NamespaceName,
		State:       TaskState(t.State),
		Outcome:     string(t.Outcome()),
		Documents:   t.Documents,
		Read:        t.Read,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}

	if t.Result != nil {
		for _, f := range t.Result.FailedDocuments {
			task.Failed = append(task.Failed, FailedDocument{Name: f.DocumentName, Error: f.ErrorMessage})
		}
	}

	return task
}

func (c NamespaceConfig) toModel() model.NamespaceConfig {
	cfg := model.NamespaceConfig{
		Name:               c.Name,
		EmbeddingDimension: c.EmbeddingDimension,
	}
	if cfg.EmbeddingDimension == 0 {
		cfg.EmbeddingDimension = model.DefaultEmbeddingDimension
	}

	for _, f := range c.MetadataSchema {
		cfg.MetadataSchema = append(cfg.MetadataSchema, model.MetadataField{
			Name:        f.Name,
			Type:        model.MetadataFieldType(f.Type),
			Description: f.Description,
		})
	}

	return cfg
}
