package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/watch"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/printer"
	"github.com/pinecone-io/ragcli/internal/task"
)

// TaskWatchCommand resumes polling every pending ingestion task until all of
// them finish.
type TaskWatchCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	interval time.Duration
}

// NewTaskWatchCommand returns the task watch command.
func NewTaskWatchCommand(rootCmd *RootCommand, taskCmd *TaskCommand) *TaskWatchCommand {
	c := &TaskWatchCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Cmd.Command("watch", "Resume pending ingestion tasks and wait until they finish.")
	c.Cmd.Flag("poll-interval", "How often to check the task statuses.").Default(task.DefaultPollInterval.String()).DurationVar(&c.interval)

	return c
}

func (c TaskWatchCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskWatchCommand) Run(ctx context.Context) error {
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

	store, err := task.NewStore(task.StoreConfig{
		Repository: repo,
		Bus:        bus,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create task store: %w", err)
	}

	poller, err := task.NewPoller(task.PollerConfig{
		Store:    store,
		Client:   client,
		Interval: c.rootCmd.ResolvePollInterval(c.interval),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create poller: %w", err)
	}

	// Stop the pollers when the context is cancelled (e.g. SIGINT), so the
	// watch returns instead of hanging.
	go func() {
		<-ctx.Done()
		poller.StopAll()
	}()

	svc, err := watch.NewService(watch.ServiceConfig{
		Client:     client,
		Store:      store,
		Poller:     poller,
		Bus:        bus,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if res.Resumed == 0 {
		return p.PrintMessage("No pending ingestion tasks")
	}

	for _, t := range res.Finished {
		if err := p.PrintTask(t); err != nil {
			return fmt.Errorf("could not print task: %w", err)
		}
	}

	return nil
}
