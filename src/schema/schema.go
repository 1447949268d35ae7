// Package schema models the schema.yaml descriptor written next to a
// dataset's parquet data.
package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Column describes one column of a dataset.
type Column struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// Schema is the serialized dataset descriptor.
type Schema struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Path        string   `yaml:"path,omitempty"`
	Columns     []Column `yaml:"columns"`
}

// Encode writes the schema as YAML.
func (s *Schema) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(s)
}

// Parse reads a YAML schema descriptor.
func Parse(r io.Reader) (*Schema, error) {
	var s Schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(s.Columns) == 0 {
		return nil, fmt.Errorf("parse schema: no columns declared")
	}
	return &s, nil
}

// InferDtype reports the storage type of a column's values: "string",
// "integer", "float", "boolean", or "mixed". Nil values are ignored; an
// all-nil or empty column is "string".
func InferDtype(values []any) string {
	dtype := ""
	for _, v := range values {
		if v == nil {
			continue
		}
		t := dtypeOf(v)
		switch {
		case dtype == "" || dtype == t:
			dtype = t
		case dtype == "integer" && t == "float", dtype == "float" && t == "integer":
			dtype = "float"
		default:
			return "mixed"
		}
	}
	if dtype == "" {
		return "string"
	}
	return dtype
}

func dtypeOf(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case string:
		return "string"
	default:
		return "mixed"
	}
}
