package model

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestPackageDimensions(t *testing.T) {
	tests := []struct {
		pkg     Package
		dim     float64
		billing float64
		longest float64
		girth   float64
	}{
		{Package{Length: 10, Width: 10, Height: 10, Weight: 2}, 1000 / 222.0, 1000 / 222.0, 10, 50},
		{Package{Length: 5, Width: 30, Height: 20, Weight: 40}, 3000 / 222.0, 40, 30, 80},
		{Package{Length: 1, Width: 1, Height: 1, Weight: 0.5}, 1 / 222.0, 0.5, 1, 5},
	}

	for _, tt := range tests {
		if got := tt.pkg.DimWeight(); math.Abs(got-tt.dim) > 1e-9 {
			t.Errorf("DimWeight(%v) = %v, expected %v", tt.pkg, got, tt.dim)
		}
		if got := tt.pkg.BillingWeight(); math.Abs(got-tt.billing) > 1e-9 {
			t.Errorf("BillingWeight(%v) = %v, expected %v", tt.pkg, got, tt.billing)
		}
		if got := tt.pkg.Longest(); got != tt.longest {
			t.Errorf("Longest(%v) = %v, expected %v", tt.pkg, got, tt.longest)
		}
		if got := tt.pkg.Girth(); got != tt.girth {
			t.Errorf("Girth(%v) = %v, expected %v", tt.pkg, got, tt.girth)
		}
	}
}

func TestRateEntryJSON(t *testing.T) {
	e := RateEntry{WeightBreak: 1.5, Service: ServiceOS, ZonePrices: map[int]float64{2: 9.5, 8: math.NaN()}}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal flat: %v", err)
	}
	if flat["w"] != 1.5 || flat["service"] != "OS" || flat["2"] != 9.5 || flat["8"] != 0.0 {
		t.Errorf("flat form = %v", flat)
	}

	var back RateEntry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.WeightBreak != 1.5 || back.Service != ServiceOS {
		t.Errorf("entry = %+v", back)
	}
	if _, ok := back.Price(8); ok {
		t.Error("NaN price should not come back as a rate")
	}
	if p, ok := back.Price(2); !ok || p != 9.5 {
		t.Errorf("Price(2) = %v, %v", p, ok)
	}
}

func TestNewRateTableSorted(t *testing.T) {
	in := []RateEntry{{WeightBreak: 5}, {WeightBreak: 1}, {WeightBreak: 3}}
	table := NewRateTable("USPS-YSD-报价", VariantNone, in)

	for i, w := range []float64{1, 3, 5} {
		if table.Entries[i].WeightBreak != w {
			t.Errorf("Entries[%d] = %v, expected %v", i, table.Entries[i].WeightBreak, w)
		}
	}
	if in[0].WeightBreak != 5 {
		t.Error("NewRateTable must not reorder the caller's slice")
	}

	var empty *RateTable
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Error("nil table should be empty")
	}
}

func TestChannelRatesTable(t *testing.T) {
	res := NewRateTable("c", VariantResidential, []RateEntry{{WeightBreak: 1}})
	com := NewRateTable("c", VariantCommercial, []RateEntry{{WeightBreak: 1}})
	flat := NewRateTable("c", VariantNone, []RateEntry{{WeightBreak: 1}})

	split := &ChannelRates{Residential: res, Commercial: com}
	if split.Table(true) != res || split.Table(false) != com {
		t.Error("split rates should select by address type")
	}

	single := &ChannelRates{Prices: flat}
	if single.Table(true) != flat || single.Table(false) != flat {
		t.Error("single table should serve both address types")
	}

	var none *ChannelRates
	if none.Table(true) != nil {
		t.Error("nil rates should yield nil table")
	}
}

func TestChannelConfigHelpers(t *testing.T) {
	ch := ChannelConfig{AllowedWarehouses: []string{"91730"}}
	if !ch.AllowsWarehouse("91730") || ch.AllowsWarehouse("60632") {
		t.Error("AllowsWarehouse mismatch")
	}
	if ch.Precision() != 1 || ch.FallbackZone() != 8 {
		t.Errorf("defaults = (%v, %d)", ch.Precision(), ch.FallbackZone())
	}

	ch.MultiService = true
	ch.WeightPrecision = 0.1
	if ch.Precision() != 0.1 || ch.FallbackZone() != 6 {
		t.Errorf("multi-service = (%v, %d)", ch.Precision(), ch.FallbackZone())
	}

	if !FuelStandard.Charged() || !FuelDiscount85.Charged() || FuelIncluded.Charged() || FuelNone.Charged() {
		t.Error("Charged() mismatch")
	}
}

func TestRegionTags(t *testing.T) {
	for _, r := range []Region{RegionWest, RegionCentral, RegionEast} {
		back, ok := RegionFromGofoTag(" " + r.GofoTag() + " ")
		if !ok || back != r {
			t.Errorf("RegionFromGofoTag(%s) = %s, %v", r.GofoTag(), back, ok)
		}
	}
	if _, ok := RegionFromGofoTag("XX"); ok {
		t.Error("unknown tag should not resolve")
	}
}

func TestLoadBundle(t *testing.T) {
	raw := `{
  "generation_id": "g1",
  "warehouses": {"91730": {"name": "W", "region": "WEST"}},
  "channels": {"X": {"keywords": ["X"], "allow_wh": ["91730"], "fuel_mode": "standard", "zone_source": "general", "fees": {"res": 1, "sig": 2}, "weight_precision": 1}},
  "tiers": {"T0": {"X": {"prices_residential": [{"w": 1, "2": 5}], "prices_commercial": [{"w": 1, "2": 4}], "fuel_rate": 0.12}}},
  "tier_order": ["T0"]
}`
	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, err := LoadBundle(path)
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}

	if b.Warehouses["91730"].Code != "91730" || b.Channels["X"].Name != "X" {
		t.Error("Normalize should copy map keys into names")
	}
	rates := b.Rates("T0", "X")
	if !rates.IsSplit() || rates.Residential.Channel != "X" || rates.Commercial.Variant != VariantCommercial {
		t.Errorf("rates = %+v", rates)
	}
	if got := b.DefaultFuelPercent("T0"); math.Abs(got-12) > 1e-9 {
		t.Errorf("DefaultFuelPercent() = %v, expected 12", got)
	}
	if b.TableCount() != 2 {
		t.Errorf("TableCount() = %d, expected 2", b.TableCount())
	}
	if b.Rates("T9", "X") != nil {
		t.Error("unknown tier should yield nil rates")
	}

	if _, err := LoadBundle(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing bundle")
	}
}
