package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/documentlist"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// DocumentListCommand lists the documents of a namespace.
type DocumentListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	docCmd  *DocumentCommand

	format string
}

// NewDocumentListCommand returns the document list command.
func NewDocumentListCommand(rootCmd *RootCommand, docCmd *DocumentCommand) *DocumentListCommand {
	c := &DocumentListCommand{rootCmd: rootCmd, docCmd: docCmd}

	c.Cmd = docCmd.Cmd.Command("list", "List the documents of a namespace.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c DocumentListCommand) Name() string { return c.Cmd.FullCommand() }

func (c DocumentListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	svc, err := documentlist.NewService(documentlist.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	docs, err := svc.Run(ctx, documentlist.Request{NamespaceName: c.docCmd.namespace})
	if err != nil {
		return fmt.Errorf("could not list documents: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintDocumentList(docs); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
