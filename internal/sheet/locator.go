package sheet

import (
	"strconv"
	"strings"

	"freight-quote/internal/logger"
)

// FindSheet returns the first sheet whose normalised name contains every keyword
// and none of the excluded ones. Matching is substring based and order independent.
func FindSheet(names []string, keywords, exclude []string) (string, bool) {
	for _, name := range names {
		norm := Normalize(name)
		if !containsAll(norm, keywords) {
			continue
		}
		if containsAny(norm, exclude) {
			continue
		}
		return name, true
	}
	return "", false
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, Normalize(kw)) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, Normalize(kw)) {
			return true
		}
	}
	return false
}

const fuelScanRows = 20

var (
	fuelLabels = []string{"燃油附加费", "燃油费率"}
	fuelNotes  = []string{"含", "包含"}
)

// ScanFuelRate looks for a labelled fuel-surcharge rate in the first rows of every
// MT/632 sheet and returns it as a fraction (0.16 for 16%). Returns 0 when none is found.
func ScanFuelRate(src Source) float64 {
	for _, name := range src.SheetNames() {
		upper := strings.ToUpper(name)
		if !strings.Contains(upper, "MT") && !strings.Contains(upper, "632") {
			continue
		}

		g, err := src.Grid(name)
		if err != nil {
			logger.Warn("Failed to scan fuel rate in %s: %v", name, err)
			continue
		}

		if rate, ok := scanGridFuel(g); ok {
			return rate
		}
	}
	return 0
}

func scanGridFuel(g *Grid) (float64, bool) {
	rows := g.Rows()
	if rows > fuelScanRows {
		rows = fuelScanRows
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < g.Cols(); c++ {
			if !ContainsAny(g.Cell(r, c), fuelLabels) {
				continue
			}
			for offset := 1; offset <= 3 && c+offset < g.Cols(); offset++ {
				if rate, ok := parseFuelValue(g.Cell(r, c+offset)); ok {
					return rate, true
				}
			}
		}
	}
	return 0, false
}

// parseFuelValue accepts a fraction (0 < v < 1) or a percentage (1 ≤ v ≤ 100)
func parseFuelValue(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if s == "" || ContainsAny(s, fuelNotes) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case v > 0 && v < 1:
		return v, true
	case v >= 1 && v <= 100:
		return v / 100, true
	}
	return 0, false
}

// ContainsAny checks if text contains any of the keywords
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
