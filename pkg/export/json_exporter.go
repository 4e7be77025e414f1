package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter renders arbitrary values into indented JSON bytes.
type JSONExporter struct{}

// NewJSONExporter builds a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Render marshals the value with two-space indentation for readability.
func (e *JSONExporter) Render(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json export: %w", err)
	}
	return data, nil
}
