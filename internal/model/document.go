package model

// Document represents one ingested document inside a namespace.
type Document struct {
	DocumentName string                 `json:"document_name"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}
