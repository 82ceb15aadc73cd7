package commands

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	appsettings "github.com/pinecone-io/ragcli/internal/app/settings"
	"github.com/pinecone-io/ragcli/internal/storage"
)

// SettingsCommand is the parent command for settings subcommands.
type SettingsCommand struct {
	Cmd *kingpin.CmdClause
}

// NewSettingsCommand returns the settings parent command.
func NewSettingsCommand(app *kingpin.Application) *SettingsCommand {
	c := &SettingsCommand{}

	c.Cmd = app.Command("settings", "Manage chat and retrieval settings.")

	return c
}

func newSettingsService(rootCmd *RootCommand, repo storage.SettingsRepository) (*appsettings.Service, error) {
	svc, err := appsettings.NewService(appsettings.ServiceConfig{
		Repository: repo,
		Logger:     rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return svc, nil
}
