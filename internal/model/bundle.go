package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// TierRates maps channel name to its extracted rates within one tier
type TierRates map[string]*ChannelRates

// Bundle is the serialisable snapshot produced by a generation run
type Bundle struct {
	GenerationID string    `json:"generation_id"`
	GeneratedAt  time.Time `json:"generated_at"`

	Warehouses   map[string]Warehouse     `json:"warehouses"`
	Channels     map[string]ChannelConfig `json:"channels"`
	ChannelOrder []string                 `json:"channel_order"`

	GofoZips     map[string]ZipLocality `json:"gofo_zips"`
	RemoteZips   []string               `json:"fedex_das_remote"`
	ExtendedZips []string               `json:"fedex_das_extended"`

	Tiers     map[string]TierRates `json:"tiers"`
	TierOrder []string             `json:"tier_order"`
}

// NewBundle creates an empty bundle with all maps initialised
func NewBundle() *Bundle {
	return &Bundle{
		Warehouses:   make(map[string]Warehouse),
		Channels:     make(map[string]ChannelConfig),
		GofoZips:     make(map[string]ZipLocality),
		RemoteZips:   []string{},
		ExtendedZips: []string{},
		Tiers:        make(map[string]TierRates),
	}
}

// Normalize restores the fields JSON does not carry (map keys copied into names, table tags)
func (b *Bundle) Normalize() {
	for code, wh := range b.Warehouses {
		wh.Code = code
		b.Warehouses[code] = wh
	}
	for name, ch := range b.Channels {
		ch.Name = name
		b.Channels[name] = ch
	}
	for _, tier := range b.Tiers {
		for name, rates := range tier {
			if rates == nil {
				continue
			}
			tag(rates.Prices, name, VariantNone)
			tag(rates.Residential, name, VariantResidential)
			tag(rates.Commercial, name, VariantCommercial)
		}
	}
}

func tag(t *RateTable, channel string, variant Variant) {
	if t == nil {
		return
	}
	t.Channel = channel
	t.Variant = variant
}

// Rates returns the rates of a channel in a tier, or nil when unavailable
func (b *Bundle) Rates(tier, channel string) *ChannelRates {
	t, ok := b.Tiers[tier]
	if !ok {
		return nil
	}
	return t[channel]
}

// DefaultFuelPercent returns the highest fuel rate among a tier's channels, as a percentage
func (b *Bundle) DefaultFuelPercent(tier string) float64 {
	maxRate := 0.0
	for _, rates := range b.Tiers[tier] {
		if rates != nil && rates.FuelRate > maxRate {
			maxRate = rates.FuelRate
		}
	}
	return maxRate * 100
}

// TableCount returns how many non-empty rate tables the bundle holds
func (b *Bundle) TableCount() int {
	n := 0
	for _, tier := range b.Tiers {
		for _, rates := range tier {
			if rates == nil {
				continue
			}
			for _, t := range []*RateTable{rates.Prices, rates.Residential, rates.Commercial} {
				if !t.IsEmpty() {
					n++
				}
			}
		}
	}
	return n
}

// LoadBundle reads a bundle JSON file written by the json exporter
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}

	b := NewBundle()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	b.Normalize()
	return b, nil
}
