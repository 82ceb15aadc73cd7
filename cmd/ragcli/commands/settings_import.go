package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/printer"
)

// SettingsImportCommand imports settings from a YAML file.
type SettingsImportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file string
}

// NewSettingsImportCommand returns the settings import command.
func NewSettingsImportCommand(rootCmd *RootCommand, settingsCmd *SettingsCommand) *SettingsImportCommand {
	c := &SettingsImportCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Cmd.Command("import", "Import settings from a YAML file ('-' for stdin).")
	c.Cmd.Arg("file", "YAML file with the settings to apply.").Required().StringVar(&c.file)

	return c
}

func (c SettingsImportCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsImportCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := newSettingsService(c.rootCmd, repo)
	if err != nil {
		return err
	}

	var r io.Reader
	if c.file == "-" {
		r = c.rootCmd.Stdin
	} else {
		f, err := os.Open(c.file)
		if err != nil {
			return fmt.Errorf("could not open %s: %w", c.file, err)
		}
		defer f.Close()
		r = f
	}

	settings, err := svc.Import(ctx, r)
	if err != nil {
		return fmt.Errorf("could not import settings: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintSettings(*settings)
}
