package lib

import (
	"context"

	"github.com/pinecone-io/ragcli/internal/app/namespacecreate"
	"github.com/pinecone-io/ragcli/internal/app/namespaceremove"
)

// CreateNamespace creates a namespace on the backend. It fails when the name
// is invalid or already in use.
func (c *Client) CreateNamespace(ctx context.Context, cfg NamespaceConfig) error {
	_, err := c.namespaceCreate.Run(ctx, namespacecreate.Request{Config: cfg.toModel()})
	return err
}

// ListNamespaces returns all backend namespaces sorted by name.
func (c *Client) ListNamespaces(ctx context.Context) ([]Namespace, error) {
	namespaces, err := c.namespaceList.Run(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Namespace, 0, len(namespaces))
	for _, ns := range namespaces {
		result = append(result, newNamespace(ns))
	}

	return result, nil
}

// DeleteNamespaces deletes namespaces in bulk and returns the ones that were
// actually deleted. When some deletions fail, the successful ones are
// returned together with an error describing the failures.
func (c *Client) DeleteNamespaces(ctx context.Context, names ...string) ([]string, error) {
	return c.namespaceRemove.Run(ctx, namespaceremove.Request{Names: names})
}
