package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DefaultEmbeddingDimension is the embedding dimension used when the user
// doesn't set one explicitly.
const DefaultEmbeddingDimension = 2048

// Namespace represents a named collection of ingested documents with an
// optional metadata schema.
type Namespace struct {
	Name           string          `json:"namespace_name"`
	NumEntities    int             `json:"num_entities"`
	MetadataSchema []MetadataField `json:"metadata_schema,omitempty"`
}

// MetadataFieldType is the type of a user-defined metadata field.
type MetadataFieldType string

const (
	MetadataFieldString   MetadataFieldType = "string"
	MetadataFieldInteger  MetadataFieldType = "integer"
	MetadataFieldFloat    MetadataFieldType = "float"
	MetadataFieldBoolean  MetadataFieldType = "boolean"
	MetadataFieldArray    MetadataFieldType = "array"
	MetadataFieldDatetime MetadataFieldType = "datetime"
)

// Valid reports whether the field type is one of the supported types.
func (t MetadataFieldType) Valid() bool {
	switch t {
	case MetadataFieldString, MetadataFieldInteger, MetadataFieldFloat,
		MetadataFieldBoolean, MetadataFieldArray, MetadataFieldDatetime:
		return true
	}
	return false
}

// MetadataField is one typed field of a namespace metadata schema.
type MetadataField struct {
	Name        string            `json:"name" yaml:"name"`
	Type        MetadataFieldType `json:"type" yaml:"type"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
}

// NamespaceConfig is the configuration for creating a namespace.
type NamespaceConfig struct {
	Name               string          `json:"namespace_name" yaml:"name"`
	EmbeddingDimension int             `json:"embedding_dimension" yaml:"embedding_dimension"`
	MetadataSchema     []MetadataField `json:"metadata_schema" yaml:"metadata_schema"`
}

var namespaceNameRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{0,62}$`)

// Validate validates the namespace configuration.
func (c *NamespaceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("namespace name is required: %w", ErrNotValid)
	}
	if !namespaceNameRegexp.MatchString(c.Name) {
		return fmt.Errorf("namespace name %q must start with a letter and contain only letters, digits, '_' or '-' (max 63 chars): %w", c.Name, ErrNotValid)
	}
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive: %w", ErrNotValid)
	}

	seen := map[string]struct{}{}
	for _, f := range c.MetadataSchema {
		if f.Name == "" {
			return fmt.Errorf("metadata field name is required: %w", ErrNotValid)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("duplicated metadata field %q: %w", f.Name, ErrNotValid)
		}
		seen[f.Name] = struct{}{}

		if !f.Type.Valid() {
			return fmt.Errorf("metadata field %q has invalid type %q: %w", f.Name, f.Type, ErrNotValid)
		}
	}

	return nil
}

// CoerceMetadata validates raw string metadata values against a schema and
// converts them to their typed representation. Unknown field names are
// rejected so typos don't silently pass through to the backend.
func CoerceMetadata(schema []MetadataField, values map[string]string) (map[string]interface{}, error) {
	fields := make(map[string]MetadataField, len(schema))
	for _, f := range schema {
		fields[f.Name] = f
	}

	result := make(map[string]interface{}, len(values))
	for name, raw := range values {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("metadata field %q is not part of the namespace schema: %w", name, ErrNotValid)
		}

		v, err := coerceMetadataValue(field.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("metadata field %q: %w", name, err)
		}
		result[name] = v
	}

	return result, nil
}

func coerceMetadataValue(t MetadataFieldType, raw string) (interface{}, error) {
	switch t {
	case MetadataFieldString:
		return raw, nil

	case MetadataFieldInteger:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer: %w", raw, ErrNotValid)
		}
		return v, nil

	case MetadataFieldFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a float: %w", raw, ErrNotValid)
		}
		return v, nil

	case MetadataFieldBoolean:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean: %w", raw, ErrNotValid)
		}
		return v, nil

	case MetadataFieldArray:
		var v []interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("%q is not a JSON array: %w", raw, ErrNotValid)
		}
		return v, nil

	case MetadataFieldDatetime:
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an RFC3339 datetime: %w", raw, ErrNotValid)
		}
		return v.Format(time.RFC3339), nil
	}

	return nil, fmt.Errorf("unsupported metadata field type %q: %w", t, ErrNotValid)
}
