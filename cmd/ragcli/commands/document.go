package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// DocumentCommand is the parent command for document management subcommands.
type DocumentCommand struct {
	Cmd *kingpin.CmdClause

	namespace string
}

// NewDocumentCommand returns the document parent command.
func NewDocumentCommand(app *kingpin.Application) *DocumentCommand {
	c := &DocumentCommand{}

	c.Cmd = app.Command("document", "Manage the documents of a namespace.")
	c.Cmd.Flag("namespace", "Namespace the documents belong to.").Short('n').Required().StringVar(&c.namespace)

	return c
}
