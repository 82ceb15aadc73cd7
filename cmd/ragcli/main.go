package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/pinecone-io/ragcli/cmd/ragcli/commands"
	"github.com/pinecone-io/ragcli/internal/log"
	loglogrus "github.com/pinecone-io/ragcli/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("ragcli", "RAG backend document and ingestion management tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	uploadCmd := commands.NewUploadCommand(rootCmd, app)

	// Namespace subcommands share a parent command.
	nsCmd := commands.NewNamespaceCommand(app)
	nsCreateCmd := commands.NewNamespaceCreateCommand(rootCmd, nsCmd)
	nsListCmd := commands.NewNamespaceListCommand(rootCmd, nsCmd)
	nsRmCmd := commands.NewNamespaceRmCommand(rootCmd, nsCmd)

	// Document subcommands share a parent command.
	docCmd := commands.NewDocumentCommand(app)
	docListCmd := commands.NewDocumentListCommand(rootCmd, docCmd)
	docRmCmd := commands.NewDocumentRmCommand(rootCmd, docCmd)
	docFailedCmd := commands.NewDocumentFailedCommand(rootCmd, docCmd)

	// Task subcommands share a parent command.
	taskCmd := commands.NewTaskCommand(app)
	taskListCmd := commands.NewTaskListCommand(rootCmd, taskCmd)
	taskStatusCmd := commands.NewTaskStatusCommand(rootCmd, taskCmd)
	taskReadCmd := commands.NewTaskReadCommand(rootCmd, taskCmd)
	taskRmCmd := commands.NewTaskRmCommand(rootCmd, taskCmd)
	taskWatchCmd := commands.NewTaskWatchCommand(rootCmd, taskCmd)

	// Settings subcommands share a parent command.
	settingsCmd := commands.NewSettingsCommand(app)
	settingsGetCmd := commands.NewSettingsGetCommand(rootCmd, settingsCmd)
	settingsSetCmd := commands.NewSettingsSetCommand(rootCmd, settingsCmd)
	settingsResetCmd := commands.NewSettingsResetCommand(rootCmd, settingsCmd)
	settingsImportCmd := commands.NewSettingsImportCommand(rootCmd, settingsCmd)

	cmds := map[string]commands.Command{
		uploadCmd.Name():         uploadCmd,
		nsCreateCmd.Name():       nsCreateCmd,
		nsListCmd.Name():         nsListCmd,
		nsRmCmd.Name():           nsRmCmd,
		docListCmd.Name():        docListCmd,
		docRmCmd.Name():          docRmCmd,
		docFailedCmd.Name():      docFailedCmd,
		taskListCmd.Name():       taskListCmd,
		taskStatusCmd.Name():     taskStatusCmd,
		taskReadCmd.Name():       taskReadCmd,
		taskRmCmd.Name():         taskRmCmd,
		taskWatchCmd.Name():      taskWatchCmd,
		settingsGetCmd.Name():    settingsGetCmd,
		settingsSetCmd.Name():    settingsSetCmd,
		settingsResetCmd.Name():  settingsResetCmd,
		settingsImportCmd.Name(): settingsImportCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output (table/JSON)
	// to prevent log noise from mixing with printer output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"namespace list":  true,
		"document list":   true,
		"document failed": true,
		"task list":       true,
		"task status":     true,
		"settings get":    true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	// Overlay the optional config file over the built-in defaults.
	if err := rootCmd.LoadConfigFile(ctx); err != nil {
		return err
	}

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
