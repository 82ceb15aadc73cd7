package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/app/namespacecreate"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/printer"
	storageio "github.com/pinecone-io/ragcli/internal/storage/io"
)

// NamespaceCreateCommand creates a namespace.
type NamespaceCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name       string
	dimension  int
	fields     map[string]string
	configFile string
}

// NewNamespaceCreateCommand returns the namespace create command.
func NewNamespaceCreateCommand(rootCmd *RootCommand, nsCmd *NamespaceCommand) *NamespaceCreateCommand {
	c := &NamespaceCreateCommand{rootCmd: rootCmd, fields: map[string]string{}}

	c.Cmd = nsCmd.Cmd.Command("create", "Create a new namespace.")
	c.Cmd.Arg("name", "Name of the namespace.").StringVar(&c.name)
	c.Cmd.Flag("dimension", "Embedding dimension.").Default(fmt.Sprintf("%d", model.DefaultEmbeddingDimension)).IntVar(&c.dimension)
	c.Cmd.Flag("field", "Metadata schema field as name=type (string, integer, float, boolean, array, datetime). Repeatable.").StringMapVar(&c.fields)
	c.Cmd.Flag("file", "Namespace configuration YAML file (overrides name/dimension/field flags).").Short('f').StringVar(&c.configFile)

	return c
}

func (c NamespaceCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c NamespaceCreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.namespaceConfig(ctx)
	if err != nil {
		return err
	}

	client, err := c.rootCmd.NewIngestorClient()
	if err != nil {
		return err
	}

	svc, err := namespacecreate.NewService(namespacecreate.ServiceConfig{
		Client: client,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	ns, err := svc.Run(ctx, namespacecreate.Request{Config: cfg})
	if err != nil {
		return fmt.Errorf("could not create namespace: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Created namespace %s", ns.Name))
}

func (c NamespaceCreateCommand) namespaceConfig(ctx context.Context) (model.NamespaceConfig, error) {
	// A YAML config file takes precedence over the flags.
	if c.configFile != "" {
		dir, file := filepath.Split(c.configFile)
		if dir == "" {
			dir = "."
		}
		repo := storageio.NewNamespaceConfigYAMLRepository(os.DirFS(dir))
		return repo.GetConfig(ctx, file)
	}

	if c.name == "" {
		return model.NamespaceConfig{}, fmt.Errorf("a namespace name or a --config file is required")
	}

	cfg := model.NamespaceConfig{
		Name:               c.name,
		EmbeddingDimension: c.dimension,
	}
	for name, fieldType := range c.fields {
		cfg.MetadataSchema = append(cfg.MetadataSchema, model.MetadataField{
			Name: name,
			Type: model.MetadataFieldType(strings.ToLower(fieldType)),
		})
	}

	return cfg, nil
}
