package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// NamespaceCommand is the parent command for namespace management subcommands.
type NamespaceCommand struct {
	Cmd *kingpin.CmdClause
}

// NewNamespaceCommand returns the namespace parent command.
func NewNamespaceCommand(app *kingpin.Application) *NamespaceCommand {
	c := &NamespaceCommand{}

	c.Cmd = app.Command("namespace", "Manage document namespaces.")

	return c
}
