package extractor

import (
	"fmt"
	"strings"

	"freight-quote/internal/catalog"
	"freight-quote/internal/model"
	"freight-quote/internal/sheet"
)

const (
	zipHeaderScanRows = 200
	zipMaxRows        = 8000
)

var (
	zipSheetKeywords = []string{"GOFO", "报价"}
	zipSheetExclude  = []string{"UNIUNI", "MT"}

	// a row holding either marker is the zip table header
	zipHeaderMarkers = []string{"目的地邮编", "GOFO_大区"}
)

// zipColumns holds the column index of each zip table field, -1 when absent
type zipColumns struct {
	zip, city, state, region int
}

// LoadZipLocalities reads the GOFO zip reference table (zip -> city/state/region)
// from a tier workbook.
func LoadZipLocalities(src sheet.Source) (map[string]model.ZipLocality, error) {
	name, ok := sheet.FindSheet(src.SheetNames(), zipSheetKeywords, zipSheetExclude)
	if !ok {
		return nil, fmt.Errorf("%w: GOFO quote sheet", sheet.ErrSheetNotFound)
	}

	g, err := src.Grid(name)
	if err != nil {
		return nil, err
	}

	headerRow, cols := findZipHeader(g)
	if headerRow < 0 {
		return nil, NewExtractionError("GOFO zip table", name, StageHeader, ErrHeaderNotFound)
	}
	if cols.zip < 0 {
		return nil, NewExtractionError("GOFO zip table", name, StageColumns, ErrColumnNotFound)
	}

	db := make(map[string]model.ZipLocality)
	rows := min(zipMaxRows, g.Rows())
	for r := headerRow + 1; r < rows; r++ {
		zip, ok := normalizeZip(g.Cell(r, cols.zip))
		if !ok {
			continue
		}
		state := g.Cell(r, cols.state)
		db[zip] = model.ZipLocality{
			City:    g.Cell(r, cols.city),
			State:   state,
			Region:  g.Cell(r, cols.region),
			CNState: catalog.StateName(state),
		}
	}
	return db, nil
}

func findZipHeader(g *sheet.Grid) (int, zipColumns) {
	rows := min(zipHeaderScanRows, g.Rows())
	for r := 0; r < rows; r++ {
		if !rowHasMarker(g, r) {
			continue
		}

		cols := zipColumns{zip: -1, city: -1, state: -1, region: -1}
		for c := 0; c < g.Cols(); c++ {
			v := g.Cell(r, c)
			switch {
			case strings.Contains(v, "邮编"):
				setOnce(&cols.zip, c)
			case strings.Contains(v, "城市"):
				setOnce(&cols.city, c)
			case strings.Contains(v, "省州"):
				setOnce(&cols.state, c)
			case strings.Contains(v, "大区"):
				setOnce(&cols.region, c)
			}
		}
		return r, cols
	}
	return -1, zipColumns{}
}

func rowHasMarker(g *sheet.Grid, r int) bool {
	for c := 0; c < g.Cols(); c++ {
		v := g.Cell(r, c)
		for _, m := range zipHeaderMarkers {
			if v == m {
				return true
			}
		}
	}
	return false
}

func setOnce(dst *int, c int) {
	if *dst < 0 {
		*dst = c
	}
}

// normalizeZip turns "1001", "1001.0" or " 01001 " into "01001"
func normalizeZip(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 5 {
		return "", false
	}
	s = strings.Repeat("0", 5-len(s)) + s
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}
