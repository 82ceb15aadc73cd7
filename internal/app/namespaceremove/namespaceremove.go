package namespaceremove

import (
	"context"
	"fmt"
	"strings"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// ServiceConfig is the configuration for the namespace remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.NamespaceRemove"})
	return nil
}

// Service handles bulk namespace deletion.
type Service struct {
	client ingestor.Client
	logger log.Logger
}

// NewService creates a new namespace remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Request are the namespace deletion parameters.
type Request struct {
	Names []string
}

// Run deletes namespaces in bulk. Partial failures are reported as an
// error carrying every per-namespace message.
func (s *Service) Run(ctx context.Context, req Request) ([]string, error) {
	if len(req.Names) == 0 {
		return nil, fmt.Errorf("at least one namespace name is required: %w", model.ErrNotValid)
	}

	res, err := s.client.DeleteNamespaces(ctx, req.Names)
	if err != nil {
		return nil, fmt.Errorf("could not delete namespaces: %w", err)
	}

	if len(res.Failed) > 0 {
		msgs := make([]string, 0, len(res.Failed))
		for _, f := range res.Failed {
			msgs = append(msgs, fmt.Sprintf("%s: %s", f.NamespaceName, f.ErrorMessage))
		}
		return res.Successful, fmt.Errorf("some namespaces could not be deleted: %s", strings.Join(msgs, "; "))
	}

	s.logger.Infof("Deleted %d namespaces", len(res.Successful))

	return res.Successful, nil
}
