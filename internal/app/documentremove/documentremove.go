package documentremove

import (
	"context"
	"fmt"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// ServiceConfig is the configuration for the document remove service.
type ServiceConfig struct {
	Client ingestor.Client
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.DocumentRemove"})
	return nil
}

// Service deletes documents from a namespace.
type Service struct {
	client ingestor.Client
	logger log.Logger
}

// NewService creates a new document remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Request are the document deletion parameters.
type Request struct {
	NamespaceName string
	DocumentNames []string
}

// Run deletes documents of a namespace by name.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.NamespaceName == "" {
		return fmt.Errorf("namespace name is required: %w", model.ErrNotValid)
	}
	if len(req.DocumentNames) == 0 {
		return fmt.Errorf("at least one document name is required: %w", model.ErrNotValid)
	}

	if err := s.client.DeleteDocuments(ctx, req.NamespaceName, req.DocumentNames); err != nil {
		return fmt.Errorf("could not delete documents: %w", err)
	}

	s.logger.Infof("Deleted %d documents from namespace %s", len(req.DocumentNames), req.NamespaceName)

	return nil
}
