package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/storage"
	"github.com/pinecone-io/ragcli/internal/task"
)

// TaskCommand is the parent command for ingestion task subcommands.
type TaskCommand struct {
	Cmd *kingpin.CmdClause
}

// NewTaskCommand returns the task parent command.
func NewTaskCommand(app *kingpin.Application) *TaskCommand {
	c := &TaskCommand{}

	c.Cmd = app.Command("task", "Manage tracked ingestion tasks and their notifications.")

	return c
}

// newHydratedStore builds a task store from the repository with the
// persisted tasks already loaded.
func newHydratedStore(ctx context.Context, rootCmd *RootCommand, repo storage.TaskRepository, bus *notify.Bus) (*task.Store, error) {
	store, err := task.NewStore(task.StoreConfig{
		Repository: repo,
		Bus:        bus,
		Logger:     rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task store: %w", err)
	}

	if err := store.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("could not load tracked tasks: %w", err)
	}

	return store, nil
}
