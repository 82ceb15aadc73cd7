package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/pinecone-io/ragcli/internal/config"
	"github.com/pinecone-io/ragcli/internal/conventions"
	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/ingestor/rest"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/storage/sqlite"
	"github.com/pinecone-io/ragcli/internal/task"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	ServerURL  string
	ConfigPath string

	// PollInterval is the config-file poll interval, 0 when the file
	// doesn't set one.
	PollInterval time.Duration

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultDBPath := conventions.DBPath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir))
	app.Flag("db-path", "Path to the SQLite database file.").Envar("RAGCLI_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)

	app.Flag("server-url", "Base URL of the RAG backend.").Envar("RAGCLI_SERVER_URL").Default(conventions.DefaultServerURL).StringVar(&c.ServerURL)

	defaultConfigPath := conventions.ConfigPath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir))
	app.Flag("config", "Path to the client configuration file.").Envar("RAGCLI_CONFIG").Default(defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// LoadConfigFile overlays values from the optional YAML configuration file.
// Flags and env vars take precedence: the file only replaces built-in
// defaults. A missing file at the default location is not an error.
func (c *RootCommand) LoadConfigFile(ctx context.Context) error {
	dir, file := filepath.Split(c.ConfigPath)
	if dir == "" {
		dir = "."
	}

	cfg, err := config.NewYAMLRepository(os.DirFS(filepath.Clean(dir))).GetConfig(ctx, file)
	if err != nil {
		defaultConfigPath := conventions.ConfigPath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir))
		if errors.Is(err, fs.ErrNotExist) && c.ConfigPath == defaultConfigPath {
			return nil
		}
		return fmt.Errorf("could not load config file %s: %w", c.ConfigPath, err)
	}

	if cfg.ServerURL != "" && c.ServerURL == conventions.DefaultServerURL {
		c.ServerURL = cfg.ServerURL
	}
	defaultDBPath := conventions.DBPath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir))
	if cfg.DBPath != "" && c.DBPath == defaultDBPath {
		c.DBPath = cfg.DBPath
	}
	c.PollInterval = cfg.PollInterval

	return nil
}

// ResolvePollInterval picks the effective poll interval: an explicit flag
// value wins, then the config file, then the built-in default.
func (c *RootCommand) ResolvePollInterval(flagValue time.Duration) time.Duration {
	if flagValue == task.DefaultPollInterval && c.PollInterval > 0 {
		return c.PollInterval
	}
	return flagValue
}

// NewRepository initializes the local state storage (SQLite).
func (c *RootCommand) NewRepository(ctx context.Context) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return repo, nil
}

// NewIngestorClient initializes the backend REST client.
func (c *RootCommand) NewIngestorClient() (ingestor.Client, error) {
	client, err := rest.NewClient(rest.ClientConfig{
		ServerURL: c.ServerURL,
		Logger:    c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create backend client: %w", err)
	}

	return client, nil
}
