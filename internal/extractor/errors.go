package extractor

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound indicates no header row was found within the scan window.
var ErrHeaderNotFound = errors.New("header row not found")

// ErrColumnNotFound indicates the header row lacks a weight column or zone columns.
var ErrColumnNotFound = errors.New("weight or zone columns not found")

// ErrSplitNotFound indicates the requested half of a side-by-side sheet does not exist.
var ErrSplitNotFound = errors.New("split table not found")

// ErrNoPrices indicates extraction finished without a single priced row.
var ErrNoPrices = errors.New("no valid price rows")

// Extraction stages reported in ExtractionError.Stage
const (
	StageSplit   = "split"
	StageHeader  = "header"
	StageColumns = "columns"
	StageRows    = "rows"
)

// ExtractionError represents a failure to extract one rate table from a sheet.
type ExtractionError struct {
	Channel string
	Sheet   string
	Stage   string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error for %s in sheet %q (%s): %v", e.Channel, e.Sheet, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(channel, sheet, stage string, err error) *ExtractionError {
	return &ExtractionError{
		Channel: channel,
		Sheet:   sheet,
		Stage:   stage,
		Err:     err,
	}
}
