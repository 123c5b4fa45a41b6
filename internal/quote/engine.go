// Package quote prices a package on every carrier channel of a data bundle.
// The engine is a pure function of the bundle and the request; quotes may be
// computed concurrently.
package quote

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"freight-quote/internal/model"
	"freight-quote/internal/zone"
)

// weightEpsilon absorbs floating error when comparing weights against breakpoints
const weightEpsilon = 0.001

// discount85 is the multiplier applied to the fuel rate under the discount_85 mode
var discount85 = decimal.NewFromFloat(0.85)

// Surcharge labels
const (
	LabelResidential = "Residential"
	LabelSignature   = "Signature"
	LabelFuel        = "Fuel"
)

// Request is one quote enquiry
type Request struct {
	Tier        string
	Warehouse   string
	Zip         string
	Package     model.Package
	Residential bool
	Signature   bool

	// FuelPercent is the fuel surcharge in percent (16 for 16%)
	FuelPercent float64
}

// Engine quotes channels against immutable rate and zone data
type Engine struct {
	resolver *zone.Resolver
}

// NewEngine creates an engine using the given zone resolver
func NewEngine(resolver *zone.Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// NewBundleEngine creates an engine over a bundle's warehouse and zip tables
func NewBundleEngine(b *model.Bundle) *Engine {
	return NewEngine(zone.NewResolver(b.Warehouses, b.GofoZips))
}

// QuoteAll validates the request and quotes every channel of the bundle in channel order.
// Ineligible channels are included with their reason.
func (e *Engine) QuoteAll(b *model.Bundle, req Request) ([]model.Quote, error) {
	if err := ValidateRequest(req, b.Warehouses); err != nil {
		return nil, err
	}

	order := b.ChannelOrder
	if len(order) == 0 {
		for name := range b.Channels {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	quotes := make([]model.Quote, 0, len(order))
	for _, name := range order {
		ch, ok := b.Channels[name]
		if !ok {
			continue
		}
		ch.Name = name
		quotes = append(quotes, e.Quote(req, ch, b.Rates(req.Tier, name)))
	}
	return quotes, nil
}

// Quote prices one channel. Each step is a gate; the first failing gate makes the
// channel ineligible with a reason.
func (e *Engine) Quote(req Request, ch model.ChannelConfig, rates *model.ChannelRates) model.Quote {
	pkg := req.Package

	// 1. Warehouse eligibility
	if !ch.AllowsWarehouse(req.Warehouse) {
		return model.Ineligible(ch.Name, model.ReasonWarehouse, fmt.Sprintf("does not ship from %s", req.Warehouse))
	}

	// 2. Physical eligibility
	if !CheckCompliance(pkg).Allows(ch.Family) {
		return model.Ineligible(ch.Name, model.ReasonCompliance, fmt.Sprintf("exceeds %s limits", ch.Family))
	}

	// 3. Weight banding
	billable := BillableWeight(pkg.BillingWeight(), ch.Precision())

	// 4. Zone
	z := e.resolver.Resolve(req.Zip, req.Warehouse, ch.ZoneSource)

	// 5. Service tier (multi-service tables only)
	svc := model.ServiceNone
	if ch.MultiService {
		var ok bool
		if svc, ok = SelectService(pkg); !ok {
			q := model.Ineligible(ch.Name, model.ReasonServiceTier, "package exceeds every service tier")
			q.Zone = z
			q.BillableWeight = billable
			return q
		}
	}

	// 6. Price lookup
	table := rates.Table(req.Residential)
	if table.IsEmpty() {
		return model.Ineligible(ch.Name, model.ReasonNoRates, fmt.Sprintf("no rates for tier %s", req.Tier))
	}
	entry, priceZone, ok := LookupPrice(table, svc, billable, z, ch.FallbackZone())
	if !ok {
		q := model.Ineligible(ch.Name, model.ReasonNoPrice, fmt.Sprintf("no rate covers %.1f lb in zone %d", billable, z))
		q.Zone = z
		q.BillableWeight = billable
		return q
	}
	price, _ := entry.Price(priceZone)

	q := model.Quote{
		Channel:        ch.Name,
		Zone:           z,
		BillableWeight: billable,
		Service:        svc,
		Variant:        table.Variant,
		BasePrice:      decimal.NewFromFloat(price),
		FuelRate:       decimal.Zero,
		FuelAmount:     decimal.Zero,
		Eligible:       true,
	}
	if priceZone != z {
		q.Notes = append(q.Notes, fmt.Sprintf("zone %d not priced, zone %d rate used", z, priceZone))
	}

	// 7. Surcharges; fees accumulate before fuel is computed on the running total
	running := q.BasePrice
	if req.Residential && ch.Fees.Residential > 0 {
		running = addSurcharge(&q, LabelResidential, decimal.NewFromFloat(ch.Fees.Residential), running)
	}
	if req.Signature && ch.Fees.Signature > 0 {
		running = addSurcharge(&q, LabelSignature, decimal.NewFromFloat(ch.Fees.Signature), running)
	}

	switch ch.FuelMode {
	case model.FuelStandard, model.FuelDiscount85:
		// Quote may be called without ValidateRequest; a non-finite percent charges nothing
		rate := decimal.NewFromFloat(model.Finite(req.FuelPercent)).Div(decimal.NewFromInt(100))
		if ch.FuelMode == model.FuelDiscount85 {
			rate = rate.Mul(discount85)
		}
		q.FuelRate = rate
		q.FuelAmount = running.Mul(rate).Round(2)
		running = addSurcharge(&q, LabelFuel, q.FuelAmount, running)
	case model.FuelIncluded:
		q.Notes = append(q.Notes, "fuel surcharge included in base price")
	}

	// 8. Total
	q.Total = running
	return q
}

func addSurcharge(q *model.Quote, label string, amount, running decimal.Decimal) decimal.Decimal {
	q.Surcharges = append(q.Surcharges, model.Surcharge{Label: label, Amount: amount})
	return running.Add(amount)
}

// BillableWeight rounds a billing weight up to the channel precision: ceil(w/p)*p.
// Quotients within 1e-9 of an integer count as exact, so rounding is idempotent.
func BillableWeight(w, precision float64) float64 {
	if precision <= 0 {
		precision = 1
	}
	q := w / precision
	if r := math.Round(q); math.Abs(q-r) < 1e-9 {
		q = r
	}
	banded := math.Ceil(q) * precision
	return math.Round(banded*1e6) / 1e6
}

// LookupPrice finds the lightest band covering the billable weight that prices the zone.
// When no band prices the zone, the fallback zone column is tried the same way.
// It returns the entry and the zone whose price applies.
func LookupPrice(t *model.RateTable, svc model.Service, billable float64, z, fallback int) (model.RateEntry, int, bool) {
	for _, candidate := range []int{z, fallback} {
		if e, ok := lightestBand(t, svc, billable, candidate); ok {
			return e, candidate, true
		}
	}
	return model.RateEntry{}, 0, false
}

// lightestBand relies on entries being sorted ascending by weight break
func lightestBand(t *model.RateTable, svc model.Service, billable float64, z int) (model.RateEntry, bool) {
	if math.IsNaN(billable) {
		return model.RateEntry{}, false
	}
	for _, e := range t.Entries {
		if svc != model.ServiceNone && e.Service != svc {
			continue
		}
		if e.WeightBreak < billable-weightEpsilon {
			continue
		}
		if _, ok := e.Price(z); ok {
			return e, true
		}
	}
	return model.RateEntry{}, false
}
