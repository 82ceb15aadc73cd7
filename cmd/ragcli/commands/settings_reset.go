package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/printer"
)

// SettingsResetCommand restores the default settings.
type SettingsResetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewSettingsResetCommand returns the settings reset command.
func NewSettingsResetCommand(rootCmd *RootCommand, settingsCmd *SettingsCommand) *SettingsResetCommand {
	c := &SettingsResetCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Cmd.Command("reset", "Restore the default settings.")

	return c
}

func (c SettingsResetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsResetCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := newSettingsService(c.rootCmd, repo)
	if err != nil {
		return err
	}

	settings, err := svc.Reset(ctx)
	if err != nil {
		return fmt.Errorf("could not reset settings: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintSettings(*settings)
}
