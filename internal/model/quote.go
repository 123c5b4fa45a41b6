package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DimDivisor is the volumetric divisor for dimensional weight (cubic inches per pound)
const DimDivisor = 222.0

// Package is a caller-supplied parcel: dimensions in inches, weight in pounds
type Package struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// DimWeight returns the dimensional weight L×W×H/222
func (p Package) DimWeight() float64 {
	return (p.Length * p.Width * p.Height) / DimDivisor
}

// BillingWeight returns the greater of actual and dimensional weight
func (p Package) BillingWeight() float64 {
	dim := p.DimWeight()
	if p.Weight > dim {
		return p.Weight
	}
	return dim
}

// SortedDims returns the dimensions longest first
func (p Package) SortedDims() [3]float64 {
	dims := []float64{p.Length, p.Width, p.Height}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	return [3]float64{dims[0], dims[1], dims[2]}
}

// Longest returns the longest dimension
func (p Package) Longest() float64 {
	return p.SortedDims()[0]
}

// Girth returns longest + 2 × (sum of the other two)
func (p Package) Girth() float64 {
	d := p.SortedDims()
	return d[0] + 2*(d[1]+d[2])
}

// Reason tells why a channel produced no quote
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonWarehouse   Reason = "warehouse"
	ReasonCompliance  Reason = "compliance"
	ReasonServiceTier Reason = "service_tier"
	ReasonNoRates     Reason = "no_rates"
	ReasonNoPrice     Reason = "no_price"
)

// Surcharge is one labelled add-on line of a quote
type Surcharge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Quote is the engine's derived result for one channel
type Quote struct {
	Channel        string          `json:"channel"`
	Zone           int             `json:"zone"`
	BillableWeight float64         `json:"billable_weight"`
	Service        Service         `json:"service,omitempty"`
	Variant        Variant         `json:"variant,omitempty"`
	BasePrice      decimal.Decimal `json:"base_price"`
	Surcharges     []Surcharge     `json:"surcharges"`
	FuelRate       decimal.Decimal `json:"fuel_rate"`
	FuelAmount     decimal.Decimal `json:"fuel_amount"`
	Total          decimal.Decimal `json:"total"`
	Eligible       bool            `json:"eligible"`
	Reason         Reason          `json:"reason,omitempty"`
	Notes          []string        `json:"notes,omitempty"`
}

// Ineligible builds an excluded quote carrying the reason
func Ineligible(channel string, reason Reason, note string) Quote {
	q := Quote{Channel: channel, Reason: reason}
	if note != "" {
		q.Notes = []string{note}
	}
	return q
}
