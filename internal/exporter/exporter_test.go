package exporter

import (
	"strings"
	"testing"
	"time"

	"freight-quote/internal/catalog"
	"freight-quote/internal/config"
	"freight-quote/internal/model"

	"github.com/xuri/excelize/v2"
)

func fixtureBundle() *model.Bundle {
	b := model.NewBundle()
	b.GenerationID = "6f1c2a4e-0000-4000-8000-000000000001"
	b.GeneratedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	b.Warehouses = catalog.Warehouses()
	b.Channels = catalog.ChannelMap()
	b.ChannelOrder = catalog.ChannelNames()
	b.GofoZips["90210"] = model.ZipLocality{City: "Beverly Hills", State: "CA", Region: "WE", CNState: "加利福尼亚"}
	b.RemoteZips = []string{"99501"}

	usps := "USPS-YSD-报价"
	fedex := "FedEx-632-MT-报价"
	xl := "XLmiles-报价"
	b.Tiers["T0"] = model.TierRates{
		usps: {Prices: model.NewRateTable(usps, model.VariantNone, []model.RateEntry{
			{WeightBreak: 2, ZonePrices: map[int]float64{2: 6, 8: 11}},
			{WeightBreak: 1, ZonePrices: map[int]float64{2: 5.5}},
		})},
		fedex: {
			Residential: model.NewRateTable(fedex, model.VariantResidential, []model.RateEntry{
				{WeightBreak: 1, ZonePrices: map[int]float64{2: 12}},
			}),
			Commercial: model.NewRateTable(fedex, model.VariantCommercial, []model.RateEntry{
				{WeightBreak: 1, ZonePrices: map[int]float64{2: 9}},
			}),
			FuelRate: 0.16,
		},
		xl: {Prices: model.NewRateTable(xl, model.VariantNone, []model.RateEntry{
			{WeightBreak: 50, Service: model.ServiceAH, ZonePrices: map[int]float64{2: 20, 6: 30}},
		})},
	}
	b.TierOrder = []string{"T0"}
	return b
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "quote-data"}}
}

func TestGetExporters(t *testing.T) {
	tests := []struct {
		formats  []string
		expected []string
	}{
		{[]string{"json", "excel", "word"}, []string{"json", "excel", "word"}},
		{[]string{"XLSX", " docx ", "excel"}, []string{"excel", "word"}},
		{[]string{"html", ""}, nil},
		{[]string{"xlsx", "excel", "docx", "word", "JSON", "json"}, []string{"excel", "word", "json"}},
	}

	for _, tt := range tests {
		got := GetExporters(tt.formats)
		var names []string
		for _, e := range got {
			names = append(names, e.Name())
		}
		if strings.Join(names, ",") != strings.Join(tt.expected, ",") {
			t.Errorf("GetExporters(%v) = %v, expected %v", tt.formats, names, tt.expected)
		}
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	b := fixtureBundle()

	if err := NewJSONExporter().Export(b, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	loaded, err := model.LoadBundle(cfg.OutputPath("json"))
	if err != nil {
		t.Fatalf("LoadBundle() error = %v", err)
	}

	if loaded.GenerationID != b.GenerationID || !loaded.GeneratedAt.Equal(b.GeneratedAt) {
		t.Errorf("header = (%s, %v)", loaded.GenerationID, loaded.GeneratedAt)
	}
	if loaded.TableCount() != b.TableCount() {
		t.Errorf("TableCount() = %d, expected %d", loaded.TableCount(), b.TableCount())
	}

	fedex := loaded.Rates("T0", "FedEx-632-MT-报价")
	if !fedex.IsSplit() || fedex.Residential.Variant != model.VariantResidential {
		t.Fatalf("split rates lost: %+v", fedex)
	}
	if fedex.FuelRate != 0.16 {
		t.Errorf("FuelRate = %v, expected 0.16", fedex.FuelRate)
	}
	if ch := loaded.Channels["XLmiles-报价"]; ch.Name != "XLmiles-报价" || !ch.MultiService {
		t.Errorf("channel config not restored: %+v", ch)
	}
	xl := loaded.Rates("T0", "XLmiles-报价").Prices
	if xl.Entries[0].Service != model.ServiceAH {
		t.Errorf("service = %s, expected AH", xl.Entries[0].Service)
	}
}

func TestExcelExport(t *testing.T) {
	cfg := testConfig(t)

	if err := NewExcelExporter().Export(fixtureBundle(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(cfg.OutputPath("xlsx"))
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	expected := []string{"Overview", "T0 USPS-YSD-报价", "T0 FedEx-632-MT-报价 RES", "T0 FedEx-632-MT-报价 COM", "T0 XLmiles-报价"}
	if strings.Join(sheets, "|") != strings.Join(expected, "|") {
		t.Fatalf("sheets = %v, expected %v", sheets, expected)
	}

	rows, err := f.GetRows("T0 USPS-YSD-报价", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if strings.Join(rows[1], ",") != "Weight (lb),Zone 2,Zone 8" {
		t.Errorf("header = %v", rows[1])
	}
	if rows[2][0] != "1" || rows[3][0] != "2" {
		t.Errorf("weights not ascending: %v, %v", rows[2], rows[3])
	}
	if len(rows[2]) > 2 && rows[2][2] != "" {
		t.Errorf("zone 8 at 1 lb should be blank, got %q", rows[2][2])
	}

	xlRows, _ := f.GetRows("T0 XLmiles-报价")
	if xlRows[1][1] != "Service" || xlRows[2][1] != "AH" {
		t.Errorf("service column missing: %v", xlRows)
	}

	if v, _ := f.GetCellValue("Overview", "B2"); v != "6f1c2a4e-0000-4000-8000-000000000001" {
		t.Errorf("Overview generation id = %q", v)
	}
}

func TestAssignSheetNames(t *testing.T) {
	long := strings.Repeat("渠", 40)
	refs := []tableRef{
		{Tier: "T0", Channel: long},
		{Tier: "T0", Channel: long},
		{Tier: "T1", Channel: "a/b:c"},
	}
	assignSheetNames(refs)

	if n := len([]rune(refs[0].Sheet)); n != maxSheetName {
		t.Errorf("len(%q) = %d, expected %d", refs[0].Sheet, n, maxSheetName)
	}
	if refs[0].Sheet == refs[1].Sheet || !strings.HasSuffix(refs[1].Sheet, "~2") {
		t.Errorf("duplicate names not disambiguated: %q, %q", refs[0].Sheet, refs[1].Sheet)
	}
	if len([]rune(refs[1].Sheet)) > maxSheetName {
		t.Errorf("%q exceeds %d runes", refs[1].Sheet, maxSheetName)
	}
	if refs[2].Sheet != "T1 a_b_c" {
		t.Errorf("sanitized = %q", refs[2].Sheet)
	}
}
