package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// TaskStatusCommand shows the current status of a tracked ingestion task.
type TaskStatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID  string
	format  string
	refresh bool
}

// NewTaskStatusCommand returns the task status command.
func NewTaskStatusCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskStatusCommand {
	c := &TaskStatusCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("status", "Show the status of a tracked ingestion task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("refresh", "Query the backend for the latest state before printing.").Default("true").BoolVar(&c.refresh)

	return c
}

func (c TaskStatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskStatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

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

	if c.refresh {
		client, err := c.rootCmd.NewIngestorClient()
		if err != nil {
			return err
		}

		status, err := client.TaskStatus(ctx, c.taskID)
		if err != nil {
			logger.Warningf("Could not refresh task %s from the backend: %s", c.taskID, err)
		} else if err := store.UpdateTaskStatus(ctx, c.taskID, status.State, status.Result); err != nil {
			return fmt.Errorf("could not update task: %w", err)
		}
		store.WaitNotifications()
	}

	t, err := store.Task(c.taskID)
	if err != nil {
		return fmt.Errorf("could not get task: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTask(*t); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
