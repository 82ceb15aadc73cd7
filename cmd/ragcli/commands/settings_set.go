package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/pinecone-io/ragcli/internal/printer"
)

// SettingsSetCommand updates individual settings values.
type SettingsSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	chatModel           string
	chatEndpoint        string
	embeddingModel      string
	embeddingEndpoint   string
	rerankerModel       string
	rerankerEndpoint    string
	useReranker         string
	temperature         float64
	topP                float64
	vectorDBTopK        int
	rerankerTopK        int
	confidenceThreshold float64
}

const unsetNumber = -1

// NewSettingsSetCommand returns the settings set command.
func NewSettingsSetCommand(rootCmd *RootCommand, settingsCmd *SettingsCommand) *SettingsSetCommand {
	c := &SettingsSetCommand{rootCmd: rootCmd}

	c.Cmd = settingsCmd.Cmd.Command("set", "Update settings values, leaving the rest untouched.")
	c.Cmd.Flag("chat-model", "Chat model name.").StringVar(&c.chatModel)
	c.Cmd.Flag("chat-endpoint", "Chat model endpoint URL.").StringVar(&c.chatEndpoint)
	c.Cmd.Flag("embedding-model", "Embedding model name.").StringVar(&c.embeddingModel)
	c.Cmd.Flag("embedding-endpoint", "Embedding model endpoint URL.").StringVar(&c.embeddingEndpoint)
	c.Cmd.Flag("reranker-model", "Reranker model name.").StringVar(&c.rerankerModel)
	c.Cmd.Flag("reranker-endpoint", "Reranker model endpoint URL.").StringVar(&c.rerankerEndpoint)
	c.Cmd.Flag("use-reranker", "Enable or disable the reranker (true, false).").EnumVar(&c.useReranker, "true", "false")
	c.Cmd.Flag("temperature", "Sampling temperature (0..1).").Default("-1").Float64Var(&c.temperature)
	c.Cmd.Flag("top-p", "Nucleus sampling top-p (0..1).").Default("-1").Float64Var(&c.topP)
	c.Cmd.Flag("vdb-top-k", "Vector DB retrieval top-k.").Default("-1").IntVar(&c.vectorDBTopK)
	c.Cmd.Flag("reranker-top-k", "Reranker top-k.").Default("-1").IntVar(&c.rerankerTopK)
	c.Cmd.Flag("confidence-threshold", "Retrieval confidence threshold (0..1).").Default("-1").Float64Var(&c.confidenceThreshold)

	return c
}

func (c SettingsSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsSetCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.NewRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := newSettingsService(c.rootCmd, repo)
	if err != nil {
		return err
	}

	// Start from the current settings and apply only the flags the user set.
	settings, err := svc.Get(ctx)
	if err != nil {
		return fmt.Errorf("could not get settings: %w", err)
	}

	if c.chatModel != "" {
		settings.ChatModel = c.chatModel
	}
	if c.chatEndpoint != "" {
		settings.ChatEndpoint = c.chatEndpoint
	}
	if c.embeddingModel != "" {
		settings.EmbeddingModel = c.embeddingModel
	}
	if c.embeddingEndpoint != "" {
		settings.EmbeddingEndpoint = c.embeddingEndpoint
	}
	if c.rerankerModel != "" {
		settings.RerankerModel = c.rerankerModel
	}
	if c.rerankerEndpoint != "" {
		settings.RerankerEndpoint = c.rerankerEndpoint
	}
	if c.useReranker != "" {
		settings.UseReranker = c.useReranker == "true"
	}
	if c.temperature != unsetNumber {
		settings.Temperature = c.temperature
	}
	if c.topP != unsetNumber {
		settings.TopP = c.topP
	}
	if c.vectorDBTopK != unsetNumber {
		settings.VectorDBTopK = c.vectorDBTopK
	}
	if c.rerankerTopK != unsetNumber {
		settings.RerankerTopK = c.rerankerTopK
	}
	if c.confidenceThreshold != unsetNumber {
		settings.ConfidenceThreshold = c.confidenceThreshold
	}

	if err := svc.Update(ctx, *settings); err != nil {
		return fmt.Errorf("could not update settings: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintSettings(*settings)
}
