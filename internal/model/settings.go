package model

import "fmt"

// Settings are the user-tunable model and retrieval parameters, persisted
// locally as a single record.
type Settings struct {
	ChatModel         string `json:"chat_model" yaml:"chat_model"`
	ChatEndpoint      string `json:"chat_endpoint" yaml:"chat_endpoint"`
	EmbeddingModel    string `json:"embedding_model" yaml:"embedding_model"`
	EmbeddingEndpoint string `json:"embedding_endpoint" yaml:"embedding_endpoint"`
	RerankerModel     string `json:"reranker_model" yaml:"reranker_model"`
	RerankerEndpoint  string `json:"reranker_endpoint" yaml:"reranker_endpoint"`
	UseReranker       bool   `json:"use_reranker" yaml:"use_reranker"`

	Temperature         float64 `json:"temperature" yaml:"temperature"`
	TopP                float64 `json:"top_p" yaml:"top_p"`
	VectorDBTopK        int     `json:"vdb_top_k" yaml:"vdb_top_k"`
	RerankerTopK        int     `json:"reranker_top_k" yaml:"reranker_top_k"`
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`
}

// DefaultSettings returns the settings used when the user never saved any.
func DefaultSettings() Settings {
	return Settings{
		ChatModel:           "meta/llama-3.3-70b-instruct",
		EmbeddingModel:      "nvidia/llama-3.2-nv-embedqa-1b-v2",
		RerankerModel:       "nvidia/llama-3.2-nv-rerankqa-1b-v2",
		UseReranker:         true,
		Temperature:         0.2,
		TopP:                0.7,
		VectorDBTopK:        100,
		RerankerTopK:        10,
		ConfidenceThreshold: 0.25,
	}
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if s.Temperature < 0 || s.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1: %w", ErrNotValid)
	}
	if s.TopP < 0 || s.TopP > 1 {
		return fmt.Errorf("top_p must be between 0 and 1: %w", ErrNotValid)
	}
	if s.ConfidenceThreshold < 0 || s.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be between 0 and 1: %w", ErrNotValid)
	}
	if s.VectorDBTopK <= 0 {
		return fmt.Errorf("vdb_top_k must be positive: %w", ErrNotValid)
	}
	if s.RerankerTopK <= 0 {
		return fmt.Errorf("reranker_top_k must be positive: %w", ErrNotValid)
	}
	if s.RerankerTopK > s.VectorDBTopK {
		return fmt.Errorf("reranker_top_k can't be greater than vdb_top_k: %w", ErrNotValid)
	}

	return nil
}
