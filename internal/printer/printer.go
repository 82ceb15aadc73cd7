package printer

import "github.com/pinecone-io/ragcli/internal/model"

// Printer knows how to print client information in different formats.
type Printer interface {
	PrintNamespaceList(namespaces []model.Namespace) error
	PrintDocumentList(docs []model.Document) error
	PrintTaskList(tasks []model.IngestionTask, unread int) error
	PrintTask(task model.IngestionTask) error
	PrintFailedDocuments(docs []model.FailedDocument) error
	PrintSettings(settings model.Settings) error
	PrintMessage(msg string) error
}
