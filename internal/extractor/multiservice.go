package extractor

import (
	"strings"

	"freight-quote/internal/logger"
	"freight-quote/internal/model"
	"freight-quote/internal/sheet"
)

// serviceOrder is the transition order of the service tracker; the first entry is the initial state
var serviceOrder = []model.Service{model.ServiceAH, model.ServiceOS, model.ServiceOM}

// serviceTracker carries the current service tier down a multi-service sheet.
// Service labels live in merged cells spanning several rows, so a row without
// a label belongs to the last service seen.
type serviceTracker struct {
	current model.Service
}

func newServiceTracker() *serviceTracker {
	return &serviceTracker{current: serviceOrder[0]}
}

// Observe applies one row label and returns the service the row belongs to
func (t *serviceTracker) Observe(label string) model.Service {
	upper := strings.ToUpper(label)
	for _, svc := range serviceOrder {
		if strings.Contains(upper, string(svc)) {
			t.current = svc
			break
		}
	}
	return t.current
}

// ExtractMultiService extracts a table whose rows are grouped by AH/OS/OM service.
// The header is the first row mentioning a zone; weights come from the third
// column's last number.
func ExtractMultiService(g *sheet.Grid, channel string) (*model.RateTable, error) {
	headerRow := -1
	rows := min(serviceHeaderRows, g.Rows())
	for r := 0; r < rows && headerRow < 0; r++ {
		for c := 0; c < g.Cols(); c++ {
			if strings.Contains(sheet.HeaderText(g.Cell(r, c)), "zone") {
				headerRow = r
				break
			}
		}
	}
	if headerRow < 0 {
		return nil, NewExtractionError(channel, g.Name, StageHeader, ErrHeaderNotFound)
	}

	_, zoneCols := assignColumns(g, headerRow, colRange{start: 0, end: g.Cols()})
	if len(zoneCols) == 0 {
		return nil, NewExtractionError(channel, g.Name, StageColumns, ErrColumnNotFound)
	}

	tracker := newServiceTracker()
	var entries []model.RateEntry
	for r := headerRow + 1; r < g.Rows(); r++ {
		svc := tracker.Observe(g.Cell(r, 0))

		w, ok := lastNumber(g.Cell(r, serviceWeightCol))
		if !ok || w <= 0 {
			continue
		}
		prices := rowPrices(g, r, zoneCols)
		if len(prices) == 0 {
			continue
		}
		entries = append(entries, model.RateEntry{WeightBreak: w, Service: svc, ZonePrices: prices})
	}

	if len(entries) == 0 {
		return nil, NewExtractionError(channel, g.Name, StageRows, ErrNoPrices)
	}

	logger.Debug("%s: %d multi-service entries from %q", channel, len(entries), g.Name)
	return model.NewRateTable(channel, model.VariantNone, entries), nil
}
