package lib

import (
	"context"

	"github.com/pinecone-io/ragcli/internal/app/upload"
	"github.com/pinecone-io/ragcli/internal/model"
)

// Upload uploads documents into a namespace without blocking and returns the
// id of the backend ingestion task. The task is tracked locally and polled
// in the background until it finishes; follow it with [Client.Task],
// [Client.Notifications] or [Client.UploadAndWait].
//
// Metadata values are validated and typed against the namespace schema
// before anything is sent.
func (c *Client) Upload(ctx context.Context, opts UploadOpts) (taskID string, err error) {
	docs := make([]upload.Document, 0, len(opts.Documents))
	for _, d := range opts.Documents {
		docs = append(docs, upload.Document{
			Name:     d.Name,
			Content:  d.Content,
			Metadata: d.Metadata,
		})
	}

	return c.uploadSvc.Run(ctx, upload.Request{
		NamespaceName: opts.Namespace,
		Documents:     docs,
	})
}

// UploadAndWait uploads documents and blocks until the ingestion task
// reaches a terminal state or ctx is cancelled, returning the final task.
func (c *Client) UploadAndWait(ctx context.Context, opts UploadOpts) (*Task, error) {
	taskID, err := c.Upload(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.poller.Wait()
	c.store.WaitNotifications()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return c.Task(ctx, taskID)
}

// Watch resumes polling of every pending tracked task and blocks until all
// of them reach a terminal state or ctx is cancelled. Namespace document
// state is refreshed and failed documents recorded as tasks finish.
func (c *Client) Watch(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	// Stop the pollers when the context is cancelled so the watch returns.
	go func() {
		select {
		case <-ctx.Done():
			c.poller.StopAll()
		case <-done:
		}
	}()

	_, err := c.watchSvc.Run(ctx)
	return err
}

// Task returns a tracked ingestion task by id.
func (c *Client) Task(ctx context.Context, taskID string) (*Task, error) {
	t, err := c.store.Task(taskID)
	if err != nil {
		return nil, err
	}

	task := newTask(*t)
	return &task, nil
}

// Terminal reports whether the state admits no further transitions.
func (s TaskState) Terminal() bool {
	return model.TaskState(s).Terminal()
}
