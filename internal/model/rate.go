package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Variant discriminates the residential and commercial halves of a split table
type Variant string

const (
	VariantNone        Variant = ""
	VariantResidential Variant = "residential"
	VariantCommercial  Variant = "commercial"
)

// RateEntry is one weight band of a rate table
type RateEntry struct {
	// WeightBreak is the inclusive upper bound of the band in pounds
	WeightBreak float64

	// Service is set only for multi-service tables
	Service Service

	// ZonePrices holds positive prices keyed by zone
	ZonePrices map[int]float64
}

// Price returns the row price for a zone; absent or non-positive means no rate
func (e RateEntry) Price(zone int) (float64, bool) {
	p, ok := e.ZonePrices[zone]
	if !ok || p <= 0 || math.IsNaN(p) {
		return 0, false
	}
	return p, true
}

// Zones returns the priced zones in ascending order
func (e RateEntry) Zones() []int {
	zones := make([]int, 0, len(e.ZonePrices))
	for z, p := range e.ZonePrices {
		if p > 0 {
			zones = append(zones, z)
		}
	}
	sort.Ints(zones)
	return zones
}

// MarshalJSON writes the entry in the flat bundle form: {"w": 1, "service": "AH", "2": 9.5, ...}
func (e RateEntry) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(e.ZonePrices)+2)
	flat["w"] = Finite(e.WeightBreak)
	if e.Service != ServiceNone {
		flat["service"] = string(e.Service)
	}
	for z, p := range e.ZonePrices {
		flat[strconv.Itoa(z)] = Finite(p)
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat bundle form
func (e *RateEntry) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	*e = RateEntry{ZonePrices: make(map[int]float64)}
	for key, raw := range flat {
		switch key {
		case "w":
			if err := json.Unmarshal(raw, &e.WeightBreak); err != nil {
				return fmt.Errorf("invalid weight break: %w", err)
			}
		case "service":
			var svc string
			if err := json.Unmarshal(raw, &svc); err != nil {
				return fmt.Errorf("invalid service: %w", err)
			}
			e.Service = Service(svc)
		default:
			zone, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			var p float64
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("invalid price for zone %d: %w", zone, err)
			}
			if p > 0 {
				e.ZonePrices[zone] = p
			}
		}
	}
	return nil
}

// RateTable is the canonical, immutable price matrix of one (tier, channel[, variant])
type RateTable struct {
	Channel string
	Variant Variant
	Entries []RateEntry
}

// NewRateTable sorts the entries ascending by weight break and tags the table
func NewRateTable(channel string, variant Variant, entries []RateEntry) *RateTable {
	sorted := make([]RateEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightBreak < sorted[j].WeightBreak
	})
	return &RateTable{Channel: channel, Variant: variant, Entries: sorted}
}

// Len returns the number of weight bands
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// IsEmpty checks if the table holds no bands
func (t *RateTable) IsEmpty() bool {
	return t.Len() == 0
}

// MarshalJSON writes only the entry list (the bundle's "prices" arrays)
func (t *RateTable) MarshalJSON() ([]byte, error) {
	if t == nil || t.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Entries)
}

// UnmarshalJSON reads an entry list; Channel and Variant are restored by Bundle.Normalize
func (t *RateTable) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &t.Entries)
}

// ChannelRates is the extracted rate data of one channel within one tier
type ChannelRates struct {
	Prices      *RateTable `json:"prices,omitempty"`
	Residential *RateTable `json:"prices_residential,omitempty"`
	Commercial  *RateTable `json:"prices_commercial,omitempty"`
	FuelRate    float64    `json:"fuel_rate"`
}

// IsSplit checks if the channel carries residential and commercial tables
func (r *ChannelRates) IsSplit() bool {
	return r != nil && !r.Residential.IsEmpty() && !r.Commercial.IsEmpty()
}

// Table selects the table that applies to the destination address type
func (r *ChannelRates) Table(residential bool) *RateTable {
	if r == nil {
		return nil
	}
	if r.IsSplit() {
		if residential {
			return r.Residential
		}
		return r.Commercial
	}
	return r.Prices
}

// MarshalJSON sanitises the fuel rate before writing
func (r ChannelRates) MarshalJSON() ([]byte, error) {
	type alias ChannelRates
	a := alias(r)
	a.FuelRate = Finite(a.FuelRate)
	return json.Marshal(a)
}

// ZipLocality is one row of the GOFO zip reference table
type ZipLocality struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Region  string `json:"region"`
	CNState string `json:"cn_state"`
}

// Finite maps NaN and infinities to 0 so they never reach the serialised bundle
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
