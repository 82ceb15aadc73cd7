package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/faileddocs"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// DocumentFailedCommand shows the recorded failed documents of a namespace.
type DocumentFailedCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	docCmd  *DocumentCommand

	format string
	clear  bool
}

// NewDocumentFailedCommand returns the document failed command.
func NewDocumentFailedCommand(rootCmd *RootCommand, docCmd *DocumentCommand) *DocumentFailedCommand {
	c := &DocumentFailedCommand{rootCmd: rootCmd, docCmd: docCmd}

	c.Cmd = docCmd.Cmd.Command("failed", "Show documents that failed to ingest into a namespace.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("clear", "Clear the failed document record instead of showing it.").BoolVar(&c.clear)

	return c
}

func (c DocumentFailedCommand) Name() string { return c.Cmd.FullCommand() }

func (c DocumentFailedCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := faileddocs.NewService(faileddocs.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if c.clear {
		if err := svc.Clear(ctx, faileddocs.Request{NamespaceName: c.docCmd.namespace}); err != nil {
			return fmt.Errorf("could not clear failed documents: %w", err)
		}

		p := printer.NewTablePrinter(c.rootCmd.Stdout)
		return p.PrintMessage(fmt.Sprintf("Cleared failed documents of namespace %s", c.docCmd.namespace))
	}

	docs, err := svc.Run(ctx, faileddocs.Request{NamespaceName: c.docCmd.namespace})
	if err != nil {
		return fmt.Errorf("could not get failed documents: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintFailedDocuments(docs); err != nil {
		return fmt.Errorf("could not print failed documents: %w", err)
	}

	return nil
}
