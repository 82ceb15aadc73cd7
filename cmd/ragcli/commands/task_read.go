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

// TaskReadCommand marks tracked ingestion tasks as read.
type TaskReadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	all    bool
}

// NewTaskReadCommand returns the task read command.
func NewTaskReadCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskReadCommand {
	c := &TaskReadCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("read", "Mark ingestion task notifications as read.")
	c.Cmd.Arg("task-id", "ID of the task to mark as read.").StringVar(&c.taskID)
	c.Cmd.Flag("all", "Mark every notification as read.").BoolVar(&c.all)

	return c
}

func (c TaskReadCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskReadCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	if !c.all && c.taskID == "" {
		return fmt.Errorf("a task id or --all is required")
	}

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

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	if c.all {
		if err := svc.MarkAllRead(ctx); err != nil {
			return fmt.Errorf("could not mark tasks as read: %w", err)
		}
		return p.PrintMessage("Marked all notifications as read")
	}

	if err := svc.MarkRead(ctx, c.taskID); err != nil {
		return fmt.Errorf("could not mark task as read: %w", err)
	}

	return p.PrintMessage(fmt.Sprintf("Marked task %s as read", c.taskID))
}
