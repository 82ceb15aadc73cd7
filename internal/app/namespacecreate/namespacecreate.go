package namespacecreate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// ServiceConfig is the configuration for the namespace create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.NamespaceCreate"})
	return nil
}

// Service handles namespace creation business logic.
type Service struct {
	client ingestor.Client
	logger log.Logger
}

// NewService creates a new namespace create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Request are the namespace creation parameters.
type Request struct {
	Config model.NamespaceConfig
}

// Run creates a new namespace.
func (s *Service) Run(ctx context.Context, req Request) (*model.Namespace, error) {
	// 1. Validate before hitting the backend.
	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid namespace config: %w", err)
	}

	// 2. Check name uniqueness against the live namespace list.
	existing, err := s.client.ListNamespaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not check name uniqueness: %w", err)
	}
	for _, ns := range existing {
		if ns.Name == req.Config.Name {
			return nil, fmt.Errorf("namespace %q already exists: %w", req.Config.Name, model.ErrAlreadyExists)
		}
	}

	// 3. Create via the backend.
	res, err := s.client.CreateNamespace(ctx, req.Config)
	if err != nil {
		return nil, fmt.Errorf("could not create namespace: %w", err)
	}
	if len(res.Failed) > 0 {
		return nil, fmt.Errorf("namespace creation failed: %s", failuresMessage(res))
	}

	s.logger.Infof("Created namespace %s", req.Config.Name)

	return &model.Namespace{
		Name:           req.Config.Name,
		MetadataSchema: req.Config.MetadataSchema,
	}, nil
}

func failuresMessage(res *ingestor.OpResult) string {
	msgs := make([]string, 0, len(res.Failed))
	for _, f := range res.Failed {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.NamespaceName, f.ErrorMessage))
	}
	if res.Message != "" {
		msgs = append(msgs, res.Message)
	}

	return strings.Join(msgs, "; ")
}
