package zone

import "freight-quote/internal/model"

// zoneRange maps an inclusive range of 3-digit zip prefixes to a zone
type zoneRange struct {
	lo, hi int
	zone   int
}

// rangeTable is a carrier breakpoint table; the first matching range wins
type rangeTable struct {
	ranges   []zoneRange
	fallback int
}

func (t rangeTable) lookup(prefix int) int {
	for _, r := range t.ranges {
		if prefix >= r.lo && prefix <= r.hi {
			return r.zone
		}
	}
	return t.fallback
}

// Carrier policy tables. The coverage gaps and fallbacks are the carriers' own
// and are reproduced as published.
var generalTables = map[model.Region]rangeTable{
	model.RegionWest: {
		ranges: []zoneRange{
			{900, 935, 2},
			{936, 961, 3},
			{962, 994, 4},
			{995, 999, 4},
			{800, 899, 5},
			{700, 799, 6},
			{0, 199, 8},
		},
		fallback: 7,
	},
	model.RegionEast: {
		ranges: []zoneRange{
			{0, 99, 2},
			{100, 199, 3},
			{200, 299, 4},
			{300, 499, 5},
			{500, 699, 6},
			{900, 999, 8},
		},
		fallback: 7,
	},
	model.RegionCentral: {
		ranges: []zoneRange{
			{600, 629, 2},
			{630, 659, 3},
			{400, 599, 4},
			{660, 699, 5},
			{900, 999, 7},
			{0, 199, 6},
		},
		fallback: 5,
	},
}

// xlmilesTable ships from a single origin, so it has no regional variants
var xlmilesTable = rangeTable{
	ranges: []zoneRange{
		{900, 935, 2},
		{936, 961, 3},
		{970, 979, 3},
		{980, 994, 3},
		{995, 999, 3},
		{820, 831, 3},
		{832, 838, 3},
		{890, 899, 3},
		{600, 629, 6},
		{630, 699, 6},
		{700, 729, 6},
		{730, 799, 6},
		{400, 599, 6},
		{0, 199, 6},
		{200, 399, 6},
	},
	fallback: 6,
}

// gofoMatrix[origin][destination tag] for cross-region pairs; same-region is zone 2
var gofoMatrix = map[model.Region]map[model.Region]int{
	model.RegionWest: {
		model.RegionCentral: 5,
		model.RegionEast:    8,
	},
	model.RegionCentral: {
		model.RegionWest: 5,
		model.RegionEast: 6,
	},
	model.RegionEast: {
		model.RegionWest:    8,
		model.RegionCentral: 6,
	},
}
