package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pinecone-io/ragcli/internal/model"
)

// TablePrinter prints client information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintNamespaceList prints namespaces in a table format.
func (t *TablePrinter) PrintNamespaceList(namespaces []model.Namespace) error {
	if len(namespaces) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "NAME\tDOCUMENTS\tMETADATA FIELDS")

	// Print rows
	for _, ns := range namespaces {
		fields := make([]string, 0, len(ns.MetadataSchema))
		for _, f := range ns.MetadataSchema {
			fields = append(fields, fmt.Sprintf("%s(%s)", f.Name, f.Type))
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ns.Name, ns.NumEntities, strings.Join(fields, ", "))
	}

	return nil
}

// PrintDocumentList prints documents in a table format.
func (t *TablePrinter) PrintDocumentList(docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tMETADATA")

	for _, d := range docs {
		metadata := ""
		if len(d.Metadata) > 0 {
			raw, err := json.Marshal(d.Metadata)
			if err != nil {
				return fmt.Errorf("could not render document metadata: %w", err)
			}
			metadata = string(raw)
		}
		fmt.Fprintf(tw, "%s\t%s\n", d.DocumentName, metadata)
	}

	return nil
}

// PrintTaskList prints ingestion tasks in a table format, flagging the
// unread ones.
func (t *TablePrinter) PrintTaskList(tasks []model.IngestionTask, unread int) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "\tID\tNAMESPACE\tOUTCOME\tDOCS\tWHEN")

	for _, task := range tasks {
		marker := " "
		if !task.Read {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			marker,
			task.ID,
			task.NamespaceName,
			task.Outcome(),
			len(task.Documents),
			TimeAgo(task.SortTime()),
		)
	}
	tw.Flush()

	if unread > 0 {
		fmt.Fprintf(t.writer, "\n%d unread\n", unread)
	}

	return nil
}

// PrintTask prints detailed ingestion task information.
func (t *TablePrinter) PrintTask(task model.IngestionTask) error {
	fmt.Fprintf(t.writer, "ID:           %s\n", task.ID)
	fmt.Fprintf(t.writer, "Namespace:    %s\n", task.NamespaceName)
	fmt.Fprintf(t.writer, "State:        %s\n", task.State)
	fmt.Fprintf(t.writer, "Outcome:      %s\n", task.Outcome())
	fmt.Fprintf(t.writer, "Created:      %s\n", FormatTimestamp(task.CreatedAt))

	if task.CompletedAt != nil {
		fmt.Fprintf(t.writer, "Completed:    %s\n", FormatTimestamp(*task.CompletedAt))
	}

	if len(task.Documents) > 0 {
		fmt.Fprintf(t.writer, "Documents:    %s\n", strings.Join(task.Documents, ", "))
	}

	if task.Result != nil {
		fmt.Fprintf(t.writer, "Ingested:     %d/%d\n", len(task.Result.Documents), task.Result.TotalDocuments)
		for _, f := range task.Result.FailedDocuments {
			fmt.Fprintf(t.writer, "  Failed:     %s (%s)\n", f.DocumentName, f.ErrorMessage)
		}
		if task.Result.Message != "" {
			fmt.Fprintf(t.writer, "Message:      %s\n", task.Result.Message)
		}
	}

	return nil
}

// PrintFailedDocuments prints failed documents in a table format.
func (t *TablePrinter) PrintFailedDocuments(docs []model.FailedDocument) error {
	if len(docs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tERROR")

	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\n", d.DocumentName, d.ErrorMessage)
	}

	return nil
}

// PrintSettings prints the application settings.
func (t *TablePrinter) PrintSettings(settings model.Settings) error {
	fmt.Fprintf(t.writer, "Chat model:            %s\n", settings.ChatModel)
	if settings.ChatEndpoint != "" {
		fmt.Fprintf(t.writer, "Chat endpoint:         %s\n", settings.ChatEndpoint)
	}
	fmt.Fprintf(t.writer, "Embedding model:       %s\n", settings.EmbeddingModel)
	if settings.EmbeddingEndpoint != "" {
		fmt.Fprintf(t.writer, "Embedding endpoint:    %s\n", settings.EmbeddingEndpoint)
	}
	fmt.Fprintf(t.writer, "Reranker model:        %s\n", settings.RerankerModel)
	if settings.RerankerEndpoint != "" {
		fmt.Fprintf(t.writer, "Reranker endpoint:     %s\n", settings.RerankerEndpoint)
	}
	fmt.Fprintf(t.writer, "Use reranker:          %t\n", settings.UseReranker)
	fmt.Fprintf(t.writer, "Temperature:           %.2f\n", settings.Temperature)
	fmt.Fprintf(t.writer, "Top-p:                 %.2f\n", settings.TopP)
	fmt.Fprintf(t.writer, "Vector DB top-k:       %d\n", settings.VectorDBTopK)
	fmt.Fprintf(t.writer, "Reranker top-k:        %d\n", settings.RerankerTopK)
	fmt.Fprintf(t.writer, "Confidence threshold:  %.2f\n", settings.ConfidenceThreshold)

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
