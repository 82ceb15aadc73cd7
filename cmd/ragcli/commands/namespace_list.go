package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/namespacelist"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// NamespaceListCommand lists the namespaces of the backend.
type NamespaceListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewNamespaceListCommand returns the namespace list command.
func NewNamespaceListCommand(rootCmd *RootCommand, nsCmd *NamespaceCommand) *NamespaceListCommand {
	c := &NamespaceListCommand{rootCmd: rootCmd}

	c.Cmd = nsCmd.Cmd.Command("list", "List all namespaces.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c NamespaceListCommand) Name() string { return c.Cmd.FullCommand() }

func (c NamespaceListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	svc, err := namespacelist.NewService(namespacelist.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	namespaces, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not list namespaces: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintNamespaceList(namespaces); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
