package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/upload"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/printer"
	"github.com/pinecone-io/ragcli/internal/task"
)

// UploadCommand uploads documents into a namespace and tracks the ingestion.
type UploadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	namespace string
	files     []string
	metadata  map[string]string
	noWait    bool
	interval  time.Duration
}

// NewUploadCommand returns the upload command.
func NewUploadCommand(rootCmd *RootCommand, app *kingpin.Application) *UploadCommand {
	c := &UploadCommand{rootCmd: rootCmd, metadata: map[string]string{}}

	c.Cmd = app.Command("upload", "Upload documents into a namespace.")
	c.Cmd.Flag("namespace", "Namespace to upload into.").Short('n').Required().StringVar(&c.namespace)
	c.Cmd.Arg("files", "Files to upload.").Required().ExistingFilesVar(&c.files)
	c.Cmd.Flag("metadata", "Metadata value as field=value, applied to every uploaded file. Repeatable.").Short('m').StringMapVar(&c.metadata)
	c.Cmd.Flag("no-wait", "Return immediately instead of waiting for the ingestion to finish.").BoolVar(&c.noWait)
	c.Cmd.Flag("poll-interval", "How often to check the ingestion task status.").Default(task.DefaultPollInterval.String()).DurationVar(&c.interval)

	return c
}

func (c UploadCommand) Name() string { return c.Cmd.FullCommand() }

func (c UploadCommand) Run(ctx context.Context) error {
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
	if err := store.Hydrate(ctx); err != nil {
		return fmt.Errorf("could not load tracked tasks: %w", err)
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

	svc, err := upload.NewService(upload.ServiceConfig{
		Client: client,
		Store:  store,
		Poller: poller,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Open every file and build the upload request.
	docs := make([]upload.Document, 0, len(c.files))
	for _, path := range c.files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("could not open %s: %w", path, err)
		}
		defer f.Close()

		docs = append(docs, upload.Document{
			Name:     filepath.Base(path),
			Content:  f,
			Metadata: c.metadata,
		})
	}

	taskID, err := svc.Run(ctx, upload.Request{
		NamespaceName: c.namespace,
		Documents:     docs,
	})
	if err != nil {
		return fmt.Errorf("could not upload documents: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	if c.noWait {
		poller.StopAll()
		poller.Wait()
		return p.PrintMessage(fmt.Sprintf("Ingestion task %s started, check it with 'ragcli task status %s'", taskID, taskID))
	}

	// Block until the poller drives the task to a terminal state.
	poller.Wait()
	store.WaitNotifications()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	result, err := store.Task(taskID)
	if err != nil {
		return fmt.Errorf("could not get task result: %w", err)
	}

	return p.PrintTask(*result)
}
