package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/namespaceremove"
	"github.com/pinecone-io/ragcli/internal/printer"
)

// NamespaceRmCommand deletes namespaces.
type NamespaceRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	names []string
}

// NewNamespaceRmCommand returns the namespace rm command.
func NewNamespaceRmCommand(rootCmd *RootCommand, nsCmd *NamespaceCommand) *NamespaceRmCommand {
	c := &NamespaceRmCommand{rootCmd: rootCmd}

	c.Cmd = nsCmd.Cmd.Command("rm", "Delete namespaces and all their documents.")
	c.Cmd.Arg("names", "Names of the namespaces to delete.").Required().StringsVar(&c.names)

	return c
}

func (c NamespaceRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c NamespaceRmCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	svc, err := namespaceremove.NewService(namespaceremove.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	successful, err := svc.Run(ctx, namespaceremove.Request{Names: c.names})

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	for _, name := range successful {
		if printErr := p.PrintMessage(fmt.Sprintf("Deleted namespace %s", name)); printErr != nil {
			return printErr
		}
	}

	if err != nil {
		return fmt.Errorf("could not delete namespaces: %w", err)
	}

	return nil
}
