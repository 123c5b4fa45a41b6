// Package extractor locates rate tables inside irregular quote sheets and
// normalises them into ascending weight-break/zone price matrices.
package extractor

import (
	"freight-quote/internal/logger"
	"freight-quote/internal/model"
	"freight-quote/internal/sheet"
)

const (
	splitScanRows       = 50
	residentialScanRows = 10
	headerScanRows      = 200
	serviceHeaderRows   = 20

	// serviceWeightCol is the 0-based column holding the weight range in multi-service sheets
	serviceWeightCol = 2
)

// Layout selects one table out of a sheet holding several side by side
type Layout struct {
	// Side picks the left or right sub-table of a two-carrier sheet
	Side model.SplitSide

	// Variant picks the residential (first) or commercial (second) half
	Variant model.Variant
}

// colRange is a half-open column interval [start, end)
type colRange struct {
	start, end int
}

// Extract builds the rate tables of one channel from its sheet.
// Split channels must yield both residential and commercial tables.
func Extract(g *sheet.Grid, ch model.ChannelConfig) (*model.ChannelRates, error) {
	switch {
	case ch.MultiService:
		t, err := ExtractMultiService(g, ch.Name)
		if err != nil {
			return nil, err
		}
		return &model.ChannelRates{Prices: t}, nil

	case ch.ResidentialSplit:
		res, err := ExtractGeneral(g, ch.Name, Layout{Variant: model.VariantResidential})
		if err != nil {
			return nil, err
		}
		com, err := ExtractGeneral(g, ch.Name, Layout{Variant: model.VariantCommercial})
		if err != nil {
			return nil, err
		}
		logger.Debug("%s: residential=%d commercial=%d rows", ch.Name, res.Len(), com.Len())
		return &model.ChannelRates{Residential: res, Commercial: com}, nil

	default:
		t, err := ExtractGeneral(g, ch.Name, Layout{Side: ch.SheetSide})
		if err != nil {
			return nil, err
		}
		return &model.ChannelRates{Prices: t}, nil
	}
}

// ExtractGeneral extracts a weight/zone table using header heuristics.
// The returned table is never empty; failures come back as *ExtractionError.
func ExtractGeneral(g *sheet.Grid, channel string, layout Layout) (*model.RateTable, error) {
	// 1. Restrict the column range
	cols, err := columnRange(g, layout)
	if err != nil {
		return nil, NewExtractionError(channel, g.Name, StageSplit, err)
	}

	// 2. Find the header row
	headerRow := findHeaderRow(g, cols)
	if headerRow < 0 {
		return nil, NewExtractionError(channel, g.Name, StageHeader, ErrHeaderNotFound)
	}

	// 3. Assign weight and zone columns
	weightCol, zoneCols := assignColumns(g, headerRow, cols)
	if weightCol < 0 || len(zoneCols) == 0 {
		return nil, NewExtractionError(channel, g.Name, StageColumns, ErrColumnNotFound)
	}

	// 4. Extract rows below the header
	var entries []model.RateEntry
	for r := headerRow + 1; r < g.Rows(); r++ {
		w, ok := parseWeight(g.Cell(r, weightCol))
		if !ok || w <= 0 {
			continue
		}
		prices := rowPrices(g, r, zoneCols)
		if len(prices) == 0 {
			continue
		}
		entries = append(entries, model.RateEntry{WeightBreak: w, ZonePrices: prices})
	}

	if len(entries) == 0 {
		return nil, NewExtractionError(channel, g.Name, StageRows, ErrNoPrices)
	}

	logger.Debug("%s%s: %d price entries from %q", channel, variantSuffix(layout.Variant), len(entries), g.Name)
	return model.NewRateTable(channel, layout.Variant, entries), nil
}

func variantSuffix(v model.Variant) string {
	if v == model.VariantNone {
		return ""
	}
	return " (" + string(v) + ")"
}

// columnRange resolves the layout hints into a column interval
func columnRange(g *sheet.Grid, layout Layout) (colRange, error) {
	full := colRange{start: 0, end: g.Cols()}

	switch layout.Side {
	case model.SplitLeft:
		cands := weightColumns(g, splitScanRows)
		switch {
		case len(cands) >= 2:
			return colRange{start: cands[0], end: cands[1]}, nil
		case len(cands) == 1:
			return colRange{start: cands[0], end: g.Cols()}, nil
		}
		return full, nil
	case model.SplitRight:
		cands := weightColumns(g, splitScanRows)
		if len(cands) < 2 {
			return full, ErrSplitNotFound
		}
		return colRange{start: cands[1], end: g.Cols()}, nil
	}

	if layout.Variant == model.VariantNone {
		return full, nil
	}

	// Residential prices sit in the first half, commercial in the second
	cands := weightColumns(g, residentialScanRows)
	if len(cands) < 2 {
		logger.Warn("%s: residential/commercial split not detected, using whole sheet", g.Name)
		return full, nil
	}
	if layout.Variant == model.VariantResidential {
		return colRange{start: cands[0], end: cands[1]}, nil
	}
	return colRange{start: cands[1], end: g.Cols()}, nil
}

// weightColumns lists, in ascending order, every column whose first maxRows cells
// contain a pound/ounce weight label. Each one starts an independent sub-table.
func weightColumns(g *sheet.Grid, maxRows int) []int {
	rows := min(maxRows, g.Rows())

	var cols []int
	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < rows; r++ {
			if isWeightColumn(sheet.HeaderText(g.Cell(r, c))) {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

// findHeaderRow returns the first row holding both a weight label and a zone label, or -1
func findHeaderRow(g *sheet.Grid, cols colRange) int {
	rows := min(headerScanRows, g.Rows())

	for r := 0; r < rows; r++ {
		hasWeight, hasZone := false, false
		for c := cols.start; c < cols.end; c++ {
			text := sheet.HeaderText(g.Cell(r, c))
			if isWeightLabel(text) {
				hasWeight = true
			}
			if _, ok := zoneNumber(text); ok {
				hasZone = true
			}
		}
		if hasWeight && hasZone {
			return r
		}
	}
	return -1
}

// assignColumns maps the header row to a weight column and zone -> column indexes.
// The first column labelled with a zone number wins when a zone repeats, so a
// secondary sub-table to the right (kg bands, peak rates) never overrides the lb prices.
func assignColumns(g *sheet.Grid, headerRow int, cols colRange) (int, map[int]int) {
	weightCol := -1
	zoneCols := make(map[int]int)

	for c := cols.start; c < cols.end; c++ {
		text := sheet.HeaderText(g.Cell(headerRow, c))
		if weightCol < 0 && isWeightColumn(text) {
			weightCol = c
		}
		if z, ok := zoneNumber(text); ok {
			if _, seen := zoneCols[z]; !seen {
				zoneCols[z] = c
			}
		}
	}
	return weightCol, zoneCols
}

// rowPrices collects the positive prices of a row
func rowPrices(g *sheet.Grid, row int, zoneCols map[int]int) map[int]float64 {
	prices := make(map[int]float64, len(zoneCols))
	for z, c := range zoneCols {
		if p := cleanNum(g.Cell(row, c)); p > 0 {
			prices[z] = p
		}
	}
	return prices
}
