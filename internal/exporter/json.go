package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"freight-quote/internal/config"
	"freight-quote/internal/model"
)

// JSONExporter writes the bundle file the quote command loads
type JSONExporter struct {
	// Indent pretty-prints the output; the bundle is compact by default
	Indent bool
}

// NewJSONExporter creates a new JSONExporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Name() string {
	return "json"
}

// Export writes <output>/<file_name>.json
func (e *JSONExporter) Export(b *model.Bundle, cfg *config.Config) error {
	outputFile := cfg.OutputPath("json")

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputFile, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	if e.Indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(b); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return file.Close()
}
