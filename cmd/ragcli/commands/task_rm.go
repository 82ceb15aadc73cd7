package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/notifications"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/printer"
	"github.com/pinecone-io/ragcli/internal/task"
)

// TaskRmCommand removes a tracked ingestion task.
type TaskRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewTaskRmCommand returns the task rm command.
func NewTaskRmCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskRmCommand {
	c := &TaskRmCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("rm", "Stop tracking an ingestion task and drop its notification.")
	c.Cmd.Arg("task-id", "ID of the task to remove.").Required().StringVar(&c.taskID)

	return c
}

func (c TaskRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	bus, err := notify.NewBus(notify.BusConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create notification bus: %w", err)
	}

	store, err := newHydratedStore(ctx, c.rootCmd, repo, bus)
	if err != nil {
		return err
	}

	poller, err := task.NewPoller(task.PollerConfig{
		Store:  store,
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create poller: %w", err)
	}

	svc, err := notifications.NewService(notifications.ServiceConfig{
		Store:  store,
		Poller: poller,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Remove(ctx, c.taskID); err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Removed task %s", c.taskID))
}
