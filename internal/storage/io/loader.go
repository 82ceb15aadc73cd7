package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/pinecone-io/ragcli/internal/model"
)

// NamespaceConfigYAMLRepository loads namespace configuration from YAML files.
type NamespaceConfigYAMLRepository struct {
	fs fs.FS
}

// NewNamespaceConfigYAMLRepository creates a new YAML namespace config repository.
func NewNamespaceConfigYAMLRepository(filesystem fs.FS) *NamespaceConfigYAMLRepository {
	return &NamespaceConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a namespace configuration from a YAML file and returns a
// validated domain model.
func (r *NamespaceConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.NamespaceConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.NamespaceConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.NamespaceConfig{}, ctx.Err()
	}

	var cfg NamespaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.NamespaceConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	res := cfg.toModel()
	if err := res.Validate(); err != nil {
		return model.NamespaceConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return res, nil
}

// NamespaceConfig represents the YAML structure for namespace configuration.
type NamespaceConfig struct {
	Name               string                `yaml:"name"`
	EmbeddingDimension int                   `yaml:"embedding_dimension"`
	MetadataSchema     []MetadataFieldConfig `yaml:"metadata_schema"`
}

// MetadataFieldConfig represents the YAML structure for one metadata field.
type MetadataFieldConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

func (c NamespaceConfig) toModel() model.NamespaceConfig {
	cfg := model.NamespaceConfig{
		Name:               c.Name,
		EmbeddingDimension: c.EmbeddingDimension,
	}
	if cfg.EmbeddingDimension == 0 {
		cfg.EmbeddingDimension = model.DefaultEmbeddingDimension
	}

	for _, f := range c.MetadataSchema {
		cfg.MetadataSchema = append(cfg.MetadataSchema, model.MetadataField{
			Name:        f.Name,
			Type:        model.MetadataFieldType(f.Type),
			Description: f.Description,
		})
	}

	return cfg
}
