// Package ingestor defines the client interface for the RAG backend REST
// API (namespace CRUD, document management, ingestion task status).
package ingestor

import (
	"context"
	"io"

	"github.com/pinecone-io/ragcli/internal/model"
)

// OpResult is the outcome of a bulk namespace create/delete operation. The
// backend reports partial failures in-band instead of failing the request.
type OpResult struct {
	Message    string
	Successful []string
	Failed     []FailedNamespace
}

// FailedNamespace is a namespace the backend could not create or delete.
type FailedNamespace struct {
	NamespaceName string `json:"namespace_name"`
	ErrorMessage  string `json:"error_message"`
}

// UploadDocument is a single file of an upload request with its custom
// metadata values.
type UploadDocument struct {
	Name     string
	Content  io.Reader
	Metadata map[string]interface{}
}

// UploadRequest is a non-blocking document upload into a namespace.
type UploadRequest struct {
	NamespaceName string
	Documents     []UploadDocument
}

// TaskStatus is the backend-reported status of an ingestion task.
type TaskStatus struct {
	State  model.TaskState
	Result *model.IngestionResult
}

// Client knows how to talk to the RAG backend.
type Client interface {
	// ListNamespaces returns all namespaces with entity counts and
	// metadata schemas.
	ListNamespaces(ctx context.Context) ([]model.Namespace, error)

	// CreateNamespace creates a namespace with the given embedding
	// dimension and metadata schema.
	CreateNamespace(ctx context.Context, cfg model.NamespaceConfig) (*OpResult, error)

	// DeleteNamespaces deletes namespaces in bulk.
	DeleteNamespaces(ctx context.Context, names []string) (*OpResult, error)

	// ListDocuments returns the documents of a namespace.
	ListDocuments(ctx context.Context, namespace string) ([]model.Document, error)

	// DeleteDocuments deletes documents of a namespace by name.
	DeleteDocuments(ctx context.Context, namespace string, names []string) error

	// UploadDocuments uploads documents without blocking and returns the
	// ingestion task id assigned by the backend.
	UploadDocuments(ctx context.Context, req UploadRequest) (taskID string, err error)

	// TaskStatus returns the current state and result of an ingestion task.
	TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)
}
