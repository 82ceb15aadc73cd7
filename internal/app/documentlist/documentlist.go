package documentlist

import (
	"context"
	"fmt"
	"sort"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// ServiceConfig is the configuration for the document list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.DocumentList"})
	return nil
}

// Service lists the documents of a namespace.
type Service struct {
	client ingestor.Client
	logger log.Logger
}

// NewService creates a new document list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Request are the document list parameters.
type Request struct {
	NamespaceName string
}

// Run returns the documents of a namespace sorted by name.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Document, error) {
	if req.NamespaceName == "" {
		return nil, fmt.Errorf("namespace name is required: %w", model.ErrNotValid)
	}

	docs, err := s.client.ListDocuments(ctx, req.NamespaceName)
	if err != nil {
		return nil, fmt.Errorf("could not list documents: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].DocumentName < docs[j].DocumentName })

	return docs, nil
}
