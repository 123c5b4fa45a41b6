package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	ouncesPerPound = 16.0
	kgPerPound     = 0.453592
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
	zonePattern   = regexp.MustCompile(`(?i)zone\D*(\d+)`)
)

// cleanNum parses a price cell. Currency symbols and thousands separators are
// stripped; anything unparseable counts as 0.
func cleanNum(raw string) float64 {
	s := strings.ReplaceAll(raw, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseWeight reads the leading number of a weight cell and converts it to pounds.
// "8 oz" -> 0.5, "2.5 kg" -> 5.51...
func parseWeight(raw string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	token := numberPattern.FindString(text)
	if token == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.Contains(text, "oz"):
		w /= ouncesPerPound
	case strings.Contains(text, "kg"):
		w /= kgPerPound
	}
	return w, true
}

// lastNumber returns the last numeric token of a cell ("OS 151-200" -> 200)
func lastNumber(raw string) (float64, bool) {
	tokens := numberPattern.FindAllString(raw, -1)
	if len(tokens) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(tokens[len(tokens)-1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// zoneNumber extracts N from a "Zone N" style header cell
func zoneNumber(raw string) (int, bool) {
	m := zonePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	z, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return z, true
}

func isWeightLabel(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "weight") || strings.Contains(lower, "重量")
}

// isWeightColumn requires a weight label with a pound or ounce unit; kg columns are ignored
func isWeightColumn(text string) bool {
	if !isWeightLabel(text) {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "lb") || strings.Contains(lower, "oz")
}
