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

// TaskListCommand lists the tracked ingestion tasks as notifications.
type TaskListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTaskListCommand returns the task list command.
func NewTaskListCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskListCommand {
	c := &TaskListCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("list", "List tracked ingestion tasks, unread first.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TaskListCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskListCommand) Run(ctx context.Context) error {
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

	tasks, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTaskList(tasks, svc.UnreadCount(ctx)); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
