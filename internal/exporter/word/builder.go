package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"freight-quote/internal/config"
	"freight-quote/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

// WordExporter writes a readable summary of the bundle into a docx template
type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Name() string {
	return "word"
}

func (e *WordExporter) Export(b *model.Bundle, cfg *config.Config) error {
	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "freight-quote-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Replace Summary Placeholders
	doc.Replace("{{Date}}", b.GeneratedAt.Format("2006-01-02 15:04"), -1)
	doc.Replace("{{GenerationID}}", b.GenerationID, -1)
	doc.Replace("{{TotalTables}}", fmt.Sprintf("%d", b.TableCount()), -1)

	// 3. Inject content (the library handles XML encoding)
	doc.Replace("{{Content}}", BuildContent(b), -1)

	outFile := cfg.OutputPath("docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// BuildContent renders the per-tier channel summary as plain text
func BuildContent(b *model.Bundle) string {
	var sb strings.Builder

	sb.WriteString("RATE BUNDLE\n\n")
	sb.WriteString("Summary Overview:\n")
	sb.WriteString(fmt.Sprintf("  • Tiers: %s\n", strings.Join(b.TierOrder, ", ")))
	sb.WriteString(fmt.Sprintf("  • Rate Tables: %d\n", b.TableCount()))
	sb.WriteString(fmt.Sprintf("  • GOFO Zips: %d\n", len(b.GofoZips)))
	sb.WriteString(fmt.Sprintf("  • FedEx Remote Zips: %d\n\n", len(b.RemoteZips)))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, tier := range b.TierOrder {
		writeTier(&sb, b, tier)
		if i < len(b.TierOrder)-1 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
	}

	return sb.String()
}

func writeTier(sb *strings.Builder, b *model.Bundle, tier string) {
	sb.WriteString(fmt.Sprintf("[TIER] %s\n\n", tier))
	sb.WriteString(fmt.Sprintf("%-28s %-6s %-6s %-16s %-12s %s\n", "Channel", "Type", "Bands", "Weight (lb)", "Zones", "Fuel"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, name := range b.ChannelOrder {
		rates := b.Rates(tier, name)
		if rates == nil {
			sb.WriteString(fmt.Sprintf("%-28s %s\n", truncate(name, 28), "(no rates)"))
			continue
		}

		for _, t := range []*model.RateTable{rates.Prices, rates.Residential, rates.Commercial} {
			if t.IsEmpty() {
				continue
			}
			sb.WriteString(fmt.Sprintf("%-28s %-6s %-6d %-16s %-12s %.2f%%\n",
				truncate(name, 28),
				variantCode(t.Variant),
				t.Len(),
				weightSpan(t),
				zoneSpan(t),
				rates.FuelRate*100))
		}
	}
}

func variantCode(v model.Variant) string {
	switch v {
	case model.VariantResidential:
		return "RES"
	case model.VariantCommercial:
		return "COM"
	default:
		return "-"
	}
}

func weightSpan(t *model.RateTable) string {
	first := t.Entries[0].WeightBreak
	last := t.Entries[len(t.Entries)-1].WeightBreak
	return fmt.Sprintf("%g - %g", first, last)
}

func zoneSpan(t *model.RateTable) string {
	lo, hi := 0, 0
	for _, e := range t.Entries {
		for _, z := range e.Zones() {
			if lo == 0 || z < lo {
				lo = z
			}
			if z > hi {
				hi = z
			}
		}
	}
	if lo == 0 {
		return "-"
	}
	return fmt.Sprintf("%d - %d", lo, hi)
}

// truncate truncates a string to a maximum number of runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
