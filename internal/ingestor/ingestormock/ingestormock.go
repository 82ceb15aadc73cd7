// Package ingestormock contains a testify mock for the ingestor client.
package ingestormock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/model"
)

// MockClient is a mock implementation of ingestor.Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListNamespaces(ctx context.Context) ([]model.Namespace, error) {
	args := m.Called(ctx)
	var ns []model.Namespace
	if args.Get(0) != nil {
		ns = args.Get(0).([]model.Namespace)
	}
	return ns, args.Error(1)
}

func (m *MockClient) CreateNamespace(ctx context.Context, cfg model.NamespaceConfig) (*ingestor.OpResult, error) {
	args := m.Called(ctx, cfg)
	var res *ingestor.OpResult
	if args.Get(0) != nil {
		res = args.Get(0).(*ingestor.OpResult)
	}
	return res, args.Error(1)
}

func (m *MockClient) DeleteNamespaces(ctx context.Context, names []string) (*ingestor.OpResult, error) {
	args := m.Called(ctx, names)
	var res *ingestor.OpResult
	if args.Get(0) != nil {
		res = args.Get(0).(*ingestor.OpResult)
	}
	return res, args.Error(1)
}

func (m *MockClient) ListDocuments(ctx context.Context, namespace string) ([]model.Document, error) {
	args := m.Called(ctx, namespace)
	var docs []model.Document
	if args.Get(0) != nil {
		docs = args.Get(0).([]model.Document)
	}
	return docs, args.Error(1)
}

func (m *MockClient) DeleteDocuments(ctx context.Context, namespace string, names []string) error {
	args := m.Called(ctx, namespace, names)
	return args.Error(0)
}

func (m *MockClient) UploadDocuments(ctx context.Context, req ingestor.UploadRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockClient) TaskStatus(ctx context.Context, taskID string) (*ingestor.TaskStatus, error) {
	args := m.Called(ctx, taskID)
	var st *ingestor.TaskStatus
	if args.Get(0) != nil {
		st = args.Get(0).(*ingestor.TaskStatus)
	}
	return st, args.Error(1)
}
