package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/task"
)

// ServiceConfig is the configuration for the upload service.
type ServiceConfig struct {
	Client ingestor.Client
	Store  *task.Store
	Poller *task.Poller
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Store == nil {
		return fmt.Errorf("task store is required")
	}
	if c.Poller == nil {
		return fmt.Errorf("poller is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Upload"})
	return nil
}

// Service uploads documents into a namespace and registers the resulting
// ingestion task so it gets tracked and polled to completion.
type Service struct {
	client ingestor.Client
	store  *task.Store
	poller *task.Poller
	logger log.Logger
}

// NewService creates a new upload service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		store:  cfg.Store,
		poller: cfg.Poller,
		logger: cfg.Logger,
	}, nil
}

// Document is a single file to upload with raw (untyped) metadata values.
type Document struct {
	Name     string
	Content  io.Reader
	Metadata map[string]string
}

// Request are the upload parameters.
type Request struct {
	NamespaceName string
	Documents     []Document
}

// Run uploads the documents without blocking and returns the id of the
// ingestion task the backend assigned. Metadata values are checked and
// typed against the namespace schema before anything is sent.
func (s *Service) Run(ctx context.Context, req Request) (taskID string, err error) {
	if req.NamespaceName == "" {
		return "", fmt.Errorf("namespace name is required: %w", model.ErrNotValid)
	}
	if len(req.Documents) == 0 {
		return "", fmt.Errorf("at least one document is required: %w", model.ErrNotValid)
	}

	schema, err := s.namespaceSchema(ctx, req.NamespaceName)
	if err != nil {
		return "", err
	}

	upReq := ingestor.UploadRequest{NamespaceName: req.NamespaceName}
	docNames := make([]string, 0, len(req.Documents))
	for _, d := range req.Documents {
		if d.Name == "" {
			return "", fmt.Errorf("document name is required: %w", model.ErrNotValid)
		}

		metadata, err := model.CoerceMetadata(schema, d.Metadata)
		if err != nil {
			return "", fmt.Errorf("document %s: %w", d.Name, err)
		}

		upReq.Documents = append(upReq.Documents, ingestor.UploadDocument{
			Name:     d.Name,
			Content:  d.Content,
			Metadata: metadata,
		})
		docNames = append(docNames, d.Name)
	}

	taskID, err = s.client.UploadDocuments(ctx, upReq)
	if err != nil {
		return "", fmt.Errorf("could not upload documents: %w", err)
	}

	t := model.IngestionTask{
		ID:            taskID,
		NamespaceName: req.NamespaceName,
		State:         model.TaskStatePending,
		Documents:     docNames,
	}
	if err := s.store.AddTask(ctx, t); err != nil {
		// The upload already happened, the task just won't be tracked.
		return taskID, fmt.Errorf("could not track ingestion task %s: %w", taskID, err)
	}

	s.poller.Start(ctx, taskID)

	s.logger.Infof("Uploading %d documents to namespace %s (task %s)", len(docNames), req.NamespaceName, taskID)

	return taskID, nil
}

func (s *Service) namespaceSchema(ctx context.Context, name string) ([]model.MetadataField, error) {
	namespaces, err := s.client.ListNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get namespace schema: %w", err)
	}

	for _, ns := range namespaces {
		if ns.Name == name {
			return ns.MetadataSchema, nil
		}
	}

	return nil, fmt.Errorf("namespace %q: %w", name, model.ErrNotFound)
}
