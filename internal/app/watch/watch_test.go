package watch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/internal/app/watch"
	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/ingestor/ingestormock"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/storage/memory"
	"github.com/pinecone-io/ragcli/internal/task"
)

func TestServiceRun(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.TODO()

	// Persisted state: one pending task and one already finished one.
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)
	require.NoError(repo.SaveTasks(ctx, []model.IngestionTask{
		{ID: "t1", NamespaceName: "docs", State: model.TaskStatePending, CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "t2", NamespaceName: "docs", State: model.TaskStateFinished, CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
	}))

	client := &ingestormock.MockClient{}
	client.On("TaskStatus", mock.Anything, "t1").Return(&ingestor.TaskStatus{
		State: model.TaskStateFinished,
		Result: &model.IngestionResult{
			TotalDocuments: 2,
			Documents:      []model.UploadedDocument{{DocumentName: "a.pdf"}},
			FailedDocuments: []model.FailedDocument{
				{DocumentName: "b.pdf", ErrorMessage: "unsupported format"},
			},
		},
	}, nil)
	client.On("ListDocuments", mock.Anything, "docs").Return([]model.Document{{DocumentName: "a.pdf"}}, nil)

	bus, err := notify.NewBus(notify.BusConfig{})
	require.NoError(err)

	store, err := task.NewStore(task.StoreConfig{Repository: repo, Bus: bus})
	require.NoError(err)

	poller, err := task.NewPoller(task.PollerConfig{
		Store:    store,
		Client:   client,
		Interval: 5 * time.Millisecond,
	})
	require.NoError(err)

	svc, err := watch.NewService(watch.ServiceConfig{
		Client:     client,
		Store:      store,
		Poller:     poller,
		Bus:        bus,
		Repository: repo,
	})
	require.NoError(err)

	res, err := svc.Run(ctx)
	require.NoError(err)

	// Only the pending task was resumed and finished during the run.
	assert.Equal(1, res.Resumed)
	require.Len(res.Finished, 1)
	assert.Equal("t1", res.Finished[0].ID)
	assert.Equal(model.TaskStateFinished, res.Finished[0].State)
	assert.NotNil(res.Finished[0].CompletedAt)

	// The namespace failed documents were recorded.
	failed, err := repo.FailedDocuments(ctx, "docs")
	require.NoError(err)
	assert.Equal([]model.FailedDocument{
		{DocumentName: "b.pdf", ErrorMessage: "unsupported format"},
	}, failed)

	client.AssertExpectations(t)
}

func TestServiceRunNothingPending(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.TODO()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)

	client := &ingestormock.MockClient{}

	bus, err := notify.NewBus(notify.BusConfig{})
	require.NoError(err)

	store, err := task.NewStore(task.StoreConfig{Repository: repo, Bus: bus})
	require.NoError(err)

	poller, err := task.NewPoller(task.PollerConfig{Store: store, Client: client, Interval: time.Hour})
	require.NoError(err)

	svc, err := watch.NewService(watch.ServiceConfig{
		Client:     client,
		Store:      store,
		Poller:     poller,
		Bus:        bus,
		Repository: repo,
	})
	require.NoError(err)

	// With nothing pending the run returns immediately.
	res, err := svc.Run(ctx)
	require.NoError(err)
	assert.Equal(0, res.Resumed)
	assert.Empty(res.Finished)

	client.AssertExpectations(t)
}
