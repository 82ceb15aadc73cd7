package namespacelist

import (
	"context"
	"fmt"
	"sort"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// ServiceConfig is the configuration for the namespace list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.NamespaceList"})
	return nil
}

// Service lists the namespaces of the backend.
type Service struct {
	client ingestor.Client
	logger log.Logger
}

// NewService creates a new namespace list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Run returns all namespaces sorted by name.
func (s *Service) Run(ctx context.Context) ([]model.Namespace, error) {
	namespaces, err := s.client.ListNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list namespaces: %w", err)
	}

	sort.Slice(namespaces, func(i, j int) bool { return namespaces[i].Name < namespaces[j].Name })

	s.logger.Debugf("Listed %d namespaces", len(namespaces))

	return namespaces, nil
}
