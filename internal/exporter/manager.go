package exporter

import (
	"strings"

	"freight-quote/internal/exporter/word"
	"freight-quote/internal/logger"
)

// GetExporters returns a list of Exporters based on requested formats
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		name := canonicalFormat(fmtStr)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "json":
			exporters = append(exporters, NewJSONExporter())
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		default:
			logger.Warn("Unknown output format %q ignored", name)
		}
	}

	return exporters
}

// canonicalFormat folds case, whitespace and file-extension aliases into one format name
func canonicalFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "xlsx":
		return "excel"
	case "docx":
		return "word"
	}
	return format
}
