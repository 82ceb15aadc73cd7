package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pinecone-io/ragcli/internal/model"
)

// JSONPrinter prints client information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskItem represents an ingestion task in the list output.
type taskItem struct {
	ID          string     `json:"id"`
	Namespace   string     `json:"namespace"`
	State       string     `json:"state"`
	Outcome     string     `json:"outcome"`
	Documents   []string   `json:"documents,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// taskListOutput represents the notification list output.
type taskListOutput struct {
	Tasks  []taskItem `json:"tasks"`
	Unread int        `json:"unread"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v interface{}) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintNamespaceList prints namespaces in JSON format.
func (j *JSONPrinter) PrintNamespaceList(namespaces []model.Namespace) error {
	return j.encode(namespaces)
}

// PrintDocumentList prints documents in JSON format.
func (j *JSONPrinter) PrintDocumentList(docs []model.Document) error {
	return j.encode(docs)
}

// PrintTaskList prints ingestion tasks in JSON format.
func (j *JSONPrinter) PrintTaskList(tasks []model.IngestionTask, unread int) error {
	items := make([]taskItem, len(tasks))
	for i, t := range tasks {
		items[i] = newTaskItem(t)
	}

	return j.encode(taskListOutput{Tasks: items, Unread: unread})
}

// PrintTask prints detailed ingestion task information in JSON format.
func (j *JSONPrinter) PrintTask(task model.IngestionTask) error {
	return j.encode(newTaskItem(task))
}

// PrintFailedDocuments prints failed documents in JSON format.
func (j *JSONPrinter) PrintFailedDocuments(docs []model.FailedDocument) error {
	return j.encode(docs)
}

// PrintSettings prints the application settings in JSON format.
func (j *JSONPrinter) PrintSettings(settings model.Settings) error {
	return j.encode(settings)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func newTaskItem(t model.IngestionTask) taskItem {
	item := taskItem{
		ID:        t.ID,
		Namespace: t.NamespaceName,
		State:     string(t.State),
		Outcome:   string(t.Outcome()),
		Documents: t.Documents,
		Read:      t.Read,
		CreatedAt: t.CreatedAt.UTC(),
	}
	if t.CompletedAt != nil {
		utcTime := t.CompletedAt.UTC()
		item.CompletedAt = &utcTime
	}

	return item
}
