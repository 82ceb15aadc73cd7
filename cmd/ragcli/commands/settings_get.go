package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/pinecone-io/ragcli/internal/printer"
)

// SettingsGetCommand shows the current settings.
type SettingsGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewSettingsGetCommand returns the settings get command.
func NewSettingsGetCommand(rootCmd *RootCommand, settingsCmd *SettingsCommand) *SettingsGetCommand {
	c := &SettingsGetCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Cmd.Command("get", "Show the current settings.")
	c.Cmd.Flag("format", "Output format (table, json, yaml).").Default("table").EnumVar(&c.format, "table", "json", "yaml")

	return c
}

func (c SettingsGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsGetCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := newSettingsService(c.rootCmd, repo)
	if err != nil {
		return err
	}

	settings, err := svc.Get(ctx)
	if err != nil {
		return fmt.Errorf("could not get settings: %w", err)
	}

	// YAML output round-trips through 'settings import'.
	if c.format == "yaml" {
		if err := yaml.NewEncoder(c.rootCmd.Stdout).Encode(settings); err != nil {
			return fmt.Errorf("could not encode settings: %w", err)
		}
		return nil
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintSettings(*settings); err != nil {
		return fmt.Errorf("could not print settings: %w", err)
	}

	return nil
}
