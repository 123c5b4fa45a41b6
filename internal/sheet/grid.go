// Package sheet turns workbook tabs into read-only cell grids and locates
// the tabs and labelled values the extractor needs.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// ErrFileNotFound indicates the workbook file does not exist
var ErrFileNotFound = errors.New("workbook not found")

// ErrSheetNotFound indicates no sheet matched the requested keywords
var ErrSheetNotFound = errors.New("sheet not found")

// Grid is a read-only 2-D table of raw cell text for one sheet.
// Out-of-range reads return "".
type Grid struct {
	Name string
	rows [][]string
	cols int
}

// NewGrid wraps rows of cell text; ragged rows are allowed
func NewGrid(name string, rows [][]string) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return &Grid{Name: name, rows: rows, cols: cols}
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return len(g.rows)
}

// Cols returns the width of the widest row
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns the trimmed text at (row, col), both 0-based
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 {
		return ""
	}
	r := g.rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Source is anything that can list sheets and hand out their grids
type Source interface {
	SheetNames() []string
	Grid(name string) (*Grid, error)
}

// Workbook is a Source backed by an excelize file; grids are loaded lazily and cached
type Workbook struct {
	Path  string
	file  *excelize.File
	cache map[string]*Grid
}

// OpenWorkbook opens an xlsx file from disk
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	wb := NewWorkbook(f)
	wb.Path = path
	return wb, nil
}

// NewWorkbook wraps an already opened excelize file
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{
		file:  f,
		cache: make(map[string]*Grid),
	}
}

// SheetNames returns the sheet names in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Grid loads the raw (unformatted) cell values of a sheet
func (w *Workbook) Grid(name string) (*Grid, error) {
	if g, ok := w.cache[name]; ok {
		return g, nil
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	g := NewGrid(name, rows)
	w.cache[name] = g
	return g, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Normalize folds full-width characters, upper-cases and strips all whitespace.
// Sheet names and keywords are compared in this form.
func Normalize(s string) string {
	s = width.Fold.String(s)
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// HeaderText folds full-width characters and lower-cases a header cell
func HeaderText(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}
