package exporter

import (
	"github.com/xuri/excelize/v2"
)

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle  int
	TitleStyle   int
	WeightStyle  int
	ServiceStyle int
	PriceStyle   int
	MissingStyle int
	DefaultStyle int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}
	var err error

	// Header Style: Bold, Gray Background, Center Aligned
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Title Style: Blue bold text for the sheet caption
	s.TitleStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#0000FF", Size: 12},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// Weight Style: bold weight break, one decimal
	weightFmt := "0.0##"
	s.WeightStyle, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       createBorder(),
		CustomNumFmt: &weightFmt,
	})
	if err != nil {
		return nil, err
	}

	// Service Style: centered service code
	s.ServiceStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Price Style: two decimals
	priceFmt := "#,##0.00"
	s.PriceStyle, err = f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Vertical: "center"},
		Border:       createBorder(),
		CustomNumFmt: &priceFmt,
	})
	if err != nil {
		return nil, err
	}

	// Missing Style: Gray fill where a zone has no price
	s.MissingStyle, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
		Border: createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Default Style
	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
