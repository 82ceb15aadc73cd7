package faileddocs

import (
	"context"
	"fmt"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/storage"
)

// ServiceConfig is the configuration for the failed documents service.
type ServiceConfig struct {
	Repository storage.FailedDocumentRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.FailedDocs"})
	return nil
}

// Service reads the locally recorded failed documents of a namespace.
type Service struct {
	repo   storage.FailedDocumentRepository
	logger log.Logger
}

// NewService creates a new failed documents service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request are the failed document listing parameters.
type Request struct {
	NamespaceName string
}

// Run returns the recorded failed documents of a namespace.
func (s *Service) Run(ctx context.Context, req Request) ([]model.FailedDocument, error) {
	if req.NamespaceName == "" {
		return nil, fmt.Errorf("namespace name is required: %w", model.ErrNotValid)
	}

	docs, err := s.repo.FailedDocuments(ctx, req.NamespaceName)
	if err != nil {
		return nil, fmt.Errorf("could not load failed documents: %w", err)
	}

	return docs, nil
}

// Clear removes the recorded failed documents of a namespace.
func (s *Service) Clear(ctx context.Context, req Request) error {
	if req.NamespaceName == "" {
		return fmt.Errorf("namespace name is required: %w", model.ErrNotValid)
	}

	if err := s.repo.SaveFailedDocuments(ctx, req.NamespaceName, []model.FailedDocument{}); err != nil {
		return fmt.Errorf("could not clear failed documents: %w", err)
	}

	return nil
}
