package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pinecone-io/ragcli/internal/model"
)

func TestTaskStateTerminal(t *testing.T) {
	tests := map[string]struct {
		state       model.TaskState
		expTerminal bool
	}{
		"Pending is not terminal":  {state: model.TaskStatePending, expTerminal: false},
		"Finished is terminal":     {state: model.TaskStateFinished, expTerminal: true},
		"Failed is terminal":       {state: model.TaskStateFailed, expTerminal: true},
		"Unknown is terminal":      {state: model.TaskStateUnknown, expTerminal: true},
		"Garbage is not terminal":  {state: model.TaskState("RUNNING"), expTerminal: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expTerminal, test.state.Terminal())
		})
	}
}

func TestTaskOutcome(t *testing.T) {
	docs := func(n int) []model.UploadedDocument {
		ds := make([]model.UploadedDocument, n)
		for i := range ds {
			ds[i] = model.UploadedDocument{DocumentName: "doc"}
		}
		return ds
	}
	failed := func(n int) []model.FailedDocument {
		ds := make([]model.FailedDocument, n)
		for i := range ds {
			ds[i] = model.FailedDocument{DocumentName: "doc", ErrorMessage: "boom"}
		}
		return ds
	}

	tests := map[string]struct {
		task       model.IngestionTask
		expOutcome model.TaskOutcome
	}{
		"Pending task is pending": {
			task:       model.IngestionTask{State: model.TaskStatePending},
			expOutcome: model.TaskOutcomePending,
		},

		"Failed state is failed regardless of the result": {
			task: model.IngestionTask{
				State:  model.TaskStateFailed,
				Result: &model.IngestionResult{Documents: docs(3)},
			},
			expOutcome: model.TaskOutcomeFailed,
		},

		"Unknown state is unknown": {
			task:       model.IngestionTask{State: model.TaskStateUnknown},
			expOutcome: model.TaskOutcomeUnknown,
		},

		"Finished without result is completed": {
			task:       model.IngestionTask{State: model.TaskStateFinished},
			expOutcome: model.TaskOutcomeCompleted,
		},

		"Finished with successes and no failures is completed": {
			task: model.IngestionTask{
				State:  model.TaskStateFinished,
				Result: &model.IngestionResult{Documents: docs(3), FailedDocuments: failed(0)},
			},
			expOutcome: model.TaskOutcomeCompleted,
		},

		"Finished with successes and failures is partially completed": {
			task: model.IngestionTask{
				State:  model.TaskStateFinished,
				Result: &model.IngestionResult{Documents: docs(3), FailedDocuments: failed(2)},
			},
			expOutcome: model.TaskOutcomePartial,
		},

		"Finished with only failures is failed": {
			task: model.IngestionTask{
				State:  model.TaskStateFinished,
				Result: &model.IngestionResult{Documents: docs(0), FailedDocuments: failed(2)},
			},
			expOutcome: model.TaskOutcomeFailed,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expOutcome, test.task.Outcome())
		})
	}
}

func TestTaskSortTime(t *testing.T) {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	completed := time.Date(2025, 5, 1, 10, 5, 0, 0, time.UTC)

	tests := map[string]struct {
		task    model.IngestionTask
		expTime time.Time
	}{
		"Pending task sorts by creation time": {
			task:    model.IngestionTask{State: model.TaskStatePending, CreatedAt: created},
			expTime: created,
		},
		"Completed task sorts by completion time": {
			task:    model.IngestionTask{State: model.TaskStateFinished, CreatedAt: created, CompletedAt: &completed},
			expTime: completed,
		},
		"Terminal task without completion time falls back to creation time": {
			task:    model.IngestionTask{State: model.TaskStateFailed, CreatedAt: created},
			expTime: created,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expTime, test.task.SortTime())
		})
	}
}

func TestTaskValidate(t *testing.T) {
	tests := map[string]struct {
		task   model.IngestionTask
		expErr bool
	}{
		"Valid task": {
			task: model.IngestionTask{ID: "t1", NamespaceName: "docs", State: model.TaskStatePending},
		},
		"Missing id is invalid": {
			task:   model.IngestionTask{NamespaceName: "docs", State: model.TaskStatePending},
			expErr: true,
		},
		"Missing namespace is invalid": {
			task:   model.IngestionTask{ID: "t1", State: model.TaskStatePending},
			expErr: true,
		},
		"Unknown state value is invalid": {
			task:   model.IngestionTask{ID: "t1", NamespaceName: "docs", State: "RUNNING"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task.Validate()

			if test.expErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
