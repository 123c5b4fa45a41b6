package exporter

import (
	"freight-quote/internal/config"
	"freight-quote/internal/model"
)

// Exporter is the unified interface for every bundle output format
type Exporter interface {
	// Name returns the format label used in logs
	Name() string

	// Export writes the bundle next to cfg.OutputPath
	Export(b *model.Bundle, cfg *config.Config) error
}
