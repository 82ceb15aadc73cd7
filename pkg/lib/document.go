package lib

import (
	"context"

	"github.com/pinecone-io/ragcli/internal/app/documentlist"
	"github.com/pinecone-io/ragcli/internal/app/documentremove"
	"github.com/pinecone-io/ragcli/internal/app/faileddocs"
)

// ListDocuments returns the documents of a namespace sorted by name.
func (c *Client) ListDocuments(ctx context.Context, namespace string) ([]Document, error) {
	docs, err := c.documentList.Run(ctx, documentlist.Request{NamespaceName: namespace})
	if err != nil {
		return nil, err
	}

	result := make([]Document, 0, len(docs))
	for _, d := range docs {
		result = append(result, Document{Name: d.DocumentName, Metadata: d.Metadata})
	}

	return result, nil
}

// DeleteDocuments deletes documents of a namespace by name.
func (c *Client) DeleteDocuments(ctx context.Context, namespace string, names ...string) error {
	return c.documentRemove.Run(ctx, documentremove.Request{
		NamespaceName: namespace,
		DocumentNames: names,
	})
}

// FailedDocuments returns the locally recorded documents that failed to
// ingest into a namespace.
func (c *Client) FailedDocuments(ctx context.Context, namespace string) ([]FailedDocument, error) {
	docs, err := c.failedDocsSvc.Run(ctx, faileddocs.Request{NamespaceName: namespace})
	if err != nil {
		return nil, err
	}

	result := make([]FailedDocument, 0, len(docs))
	for _, d := range docs {
		result = append(result, FailedDocument{Name: d.DocumentName, Error: d.ErrorMessage})
	}

	return result, nil
}
