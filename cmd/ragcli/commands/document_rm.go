package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/documentremove"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// DocumentRmCommand deletes documents from a namespace.
type DocumentRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
	docCmd  *DocumentCommand

	names []string
}

// NewDocumentRmCommand returns the document rm command.
func NewDocumentRmCommand(rootCmd *RootCommand, docCmd *DocumentCommand) *DocumentRmCommand {
	c := &DocumentRmCommand{rootCmd: rootCmd, docCmd: docCmd}

	c.Cmd = docCmd.Cmd.Command("rm", "Delete documents from a namespace.")
	c.Cmd.Arg("names", "Names of the documents to delete.").Required().StringsVar(&c.names)

	return c
}

func (c DocumentRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c DocumentRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	svc, err := documentremove.NewService(documentremove.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	err = svc.Run(ctx, documentremove.Request{
		NamespaceName: c.docCmd.namespace,
		DocumentNames: c.names,
	})
	if err != nil {
		return fmt.Errorf("could not delete documents: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Deleted %d documents from namespace %s", len(c.names), c.docCmd.namespace))
}
