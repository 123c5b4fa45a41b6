package exporter

import (
	"fmt"
	"sort"
	"strings"

	"freight-quote/internal/config"
	"freight-quote/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	maxSheetName  = 31
)

// ExcelExporter writes a rate-card workbook: an overview plus one sheet per rate table
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Name() string {
	return "excel"
}

// tableRef locates one non-empty rate table inside the bundle
type tableRef struct {
	Tier     string
	Channel  string
	Variant  model.Variant
	Table    *model.RateTable
	FuelRate float64
	Sheet    string
}

// Export generates the rate-card workbook
func (e *ExcelExporter) Export(b *model.Bundle, cfg *config.Config) error {
	outputFile := cfg.OutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	refs := collectTables(b)
	assignSheetNames(refs)

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, b, refs); err != nil {
		return err
	}

	// 2. Create one sheet per rate table
	for _, ref := range refs {
		if err := e.writeTable(f, styler, ref); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", ref.Sheet, err)
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(overviewSheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	// Save
	if err := f.SaveAs(outputFile); err != nil {
		return err
	}

	return nil
}

// collectTables walks tiers and channels in bundle order
func collectTables(b *model.Bundle) []tableRef {
	channels := b.ChannelOrder
	if len(channels) == 0 {
		for name := range b.Channels {
			channels = append(channels, name)
		}
		sort.Strings(channels)
	}

	var refs []tableRef
	for _, tier := range b.TierOrder {
		for _, name := range channels {
			rates := b.Rates(tier, name)
			if rates == nil {
				continue
			}
			for _, t := range []*model.RateTable{rates.Prices, rates.Residential, rates.Commercial} {
				if t.IsEmpty() {
					continue
				}
				refs = append(refs, tableRef{
					Tier:     tier,
					Channel:  name,
					Variant:  t.Variant,
					Table:    t,
					FuelRate: rates.FuelRate,
				})
			}
		}
	}
	return refs
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, b *model.Bundle, refs []tableRef) error {
	sheet := overviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Section A: Bundle Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Generation ID", b.GenerationID},
		{"Generated At", b.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Tiers", strings.Join(b.TierOrder, ", ")},
		{"Channels", len(b.Channels)},
		{"Rate Tables", len(refs)},
		{"GOFO Zips", len(b.GofoZips)},
		{"FedEx Remote Zips", len(b.RemoteZips)},
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 2 // Spacer

	// Section B: Table Index
	headersB := []string{"No", "Tier", "Channel", "Variant", "Bands", "Fuel Rate", "Sheet"}
	e.writeRow(f, sheet, row, headersB, s.HeaderStyle)
	row++

	for i, ref := range refs {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ref.Tier)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ref.Channel)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), variantLabel(ref.Variant))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ref.Table.Len())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f%%", ref.FuelRate*100))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), ref.Sheet)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.DefaultStyle)
		row++
	}

	// Adjust column widths
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "C", 28)
	f.SetColWidth(sheet, "G", "G", 34)

	return nil
}

// --- Rate Table Sheet Logic ---

func (e *ExcelExporter) writeTable(f *excelize.File, s *Styler, ref tableRef) error {
	sheet := ref.Sheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// 1. Caption
	caption := fmt.Sprintf("%s / %s", ref.Tier, ref.Channel)
	if ref.Variant != model.VariantNone {
		caption += " / " + variantLabel(ref.Variant)
	}
	f.SetCellValue(sheet, "A1", caption)
	f.SetCellStyle(sheet, "A1", "A1", s.TitleStyle)

	// 2. Header: weight, optional service, one column per zone
	zones := tableZones(ref.Table)
	hasService := tableHasService(ref.Table)

	headers := []string{"Weight (lb)"}
	if hasService {
		headers = append(headers, "Service")
	}
	for _, z := range zones {
		headers = append(headers, fmt.Sprintf("Zone %d", z))
	}
	e.writeRow(f, sheet, 2, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})

	// 3. Bands
	zoneStart := 2
	if hasService {
		zoneStart = 3
	}
	for i, entry := range ref.Table.Entries {
		row := i + 3

		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, entry.WeightBreak)
		f.SetCellStyle(sheet, cell, cell, s.WeightStyle)

		if hasService {
			cell, _ = excelize.CoordinatesToCellName(2, row)
			f.SetCellValue(sheet, cell, string(entry.Service))
			f.SetCellStyle(sheet, cell, cell, s.ServiceStyle)
		}

		for j, z := range zones {
			cell, _ = excelize.CoordinatesToCellName(zoneStart+j, row)
			if p, ok := entry.Price(z); ok {
				f.SetCellValue(sheet, cell, p)
				f.SetCellStyle(sheet, cell, cell, s.PriceStyle)
			} else {
				f.SetCellStyle(sheet, cell, cell, s.MissingStyle)
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 14)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

// tableZones returns every zone priced anywhere in the table, ascending
func tableZones(t *model.RateTable) []int {
	seen := make(map[int]bool)
	var zones []int
	for _, e := range t.Entries {
		for _, z := range e.Zones() {
			if !seen[z] {
				seen[z] = true
				zones = append(zones, z)
			}
		}
	}
	sort.Ints(zones)
	return zones
}

func tableHasService(t *model.RateTable) bool {
	for _, e := range t.Entries {
		if e.Service != model.ServiceNone {
			return true
		}
	}
	return false
}

func variantLabel(v model.Variant) string {
	switch v {
	case model.VariantResidential:
		return "RES"
	case model.VariantCommercial:
		return "COM"
	default:
		return ""
	}
}

// assignSheetNames gives every table a unique, valid worksheet name
func assignSheetNames(refs []tableRef) {
	used := map[string]bool{strings.ToLower(overviewSheet): true}
	for i := range refs {
		base := refs[i].Tier + " " + refs[i].Channel
		if label := variantLabel(refs[i].Variant); label != "" {
			base += " " + label
		}
		base = sanitizeSheetName(base)

		name := truncateRunes(base, maxSheetName)
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf("~%d", n)
			name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		refs[i].Sheet = name
	}
}

// sanitizeSheetName replaces the characters worksheet names may not contain
func sanitizeSheetName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(name, "'"))
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
