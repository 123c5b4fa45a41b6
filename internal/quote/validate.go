package quote

import (
	"fmt"
	"math"
	"strings"

	"freight-quote/internal/model"
)

// ValidationError lists every problem found in a quote request
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quote request: %s", strings.Join(e.Problems, "; "))
}

// ValidateRequest checks the caller-supplied fields before any channel is quoted
func ValidateRequest(req Request, warehouses map[string]model.Warehouse) error {
	var problems []string

	if req.Warehouse == "" {
		problems = append(problems, "origin warehouse is required")
	} else if _, ok := warehouses[req.Warehouse]; !ok {
		problems = append(problems, fmt.Sprintf("unknown warehouse %q", req.Warehouse))
	}
	if !isZip5(req.Zip) {
		problems = append(problems, "destination zip must be 5 digits")
	}
	pkg := req.Package
	if !positive(pkg.Weight) {
		problems = append(problems, "weight must be a number greater than 0")
	}
	if !positive(pkg.Length) || !positive(pkg.Width) || !positive(pkg.Height) {
		problems = append(problems, "all dimensions must be numbers greater than 0")
	}
	if !finite(req.FuelPercent) || req.FuelPercent < 0 {
		problems = append(problems, "fuel percentage must be a non-negative number")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func isZip5(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for _, c := range zip {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
