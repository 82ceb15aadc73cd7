// Package storagemock contains testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pinecone-io/ragcli/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadTasks(ctx context.Context) ([]model.IngestionTask, error) {
	args := m.Called(ctx)
	var tasks []model.IngestionTask
	if args.Get(0) != nil {
		tasks = args.Get(0).([]model.IngestionTask)
	}
	return tasks, args.Error(1)
}

func (m *MockRepository) SaveTasks(ctx context.Context, tasks []model.IngestionTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockRepository) Settings(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	var s *model.Settings
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Settings)
	}
	return s, args.Error(1)
}

func (m *MockRepository) SaveSettings(ctx context.Context, s model.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) FailedDocuments(ctx context.Context, namespace string) ([]model.FailedDocument, error) {
	args := m.Called(ctx, namespace)
	var docs []model.FailedDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]model.FailedDocument)
	}
	return docs, args.Error(1)
}

func (m *MockRepository) SaveFailedDocuments(ctx context.Context, namespace string, docs []model.FailedDocument) error {
	args := m.Called(ctx, namespace, docs)
	return args.Error(0)
}
