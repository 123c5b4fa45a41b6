// Package catalog holds the static, hand-authored registries: origin warehouses,
// carrier channels and US state names. All accessors return copies.
package catalog

import (
	"sort"

	"freight-quote/internal/model"
)

var warehouses = []model.Warehouse{
	{Code: "60632", Name: "SureGo美中芝加哥-60632仓", Region: model.RegionCentral},
	{Code: "91730", Name: "SureGo美西库卡蒙格-91730新仓", Region: model.RegionWest},
	{Code: "91752", Name: "SureGo美西米拉罗马-91752仓", Region: model.RegionWest},
	{Code: "08691", Name: "SureGo美东新泽西-08691仓", Region: model.RegionEast},
	{Code: "06801", Name: "SureGo美东贝塞尔-06801仓", Region: model.RegionEast},
	{Code: "11791", Name: "SureGo美东长岛-11791仓", Region: model.RegionEast},
	{Code: "07032", Name: "SureGo美东新泽西-07032仓", Region: model.RegionEast},
	{Code: "63461", Name: "SureGo退货检测-美中密苏里63461退货仓", Region: model.RegionCentral},
}

var allWarehouses = []string{"91730", "91752", "60632", "08691", "06801", "11791", "07032"}

// channels is kept in declaration order; generation and quoting walk it in this order
var channels = []model.ChannelConfig{
	{
		Name:              "GOFO-报价",
		Keywords:          []string{"GOFO", "报价"},
		Exclude:           []string{"MT", "UNIUNI", "大件"},
		AllowedWarehouses: []string{"91730", "60632"},
		FuelMode:          model.FuelNone,
		ZoneSource:        model.ZoneGofo,
		WeightPrecision:   1,
	},
	{
		Name:              "GOFO-MT-报价",
		Keywords:          []string{"GOFO", "UNIUNI", "MT"},
		SheetSide:         model.SplitLeft,
		AllowedWarehouses: []string{"91730", "60632"},
		FuelMode:          model.FuelIncluded,
		ZoneSource:        model.ZoneGofo,
		WeightPrecision:   1,
	},
	{
		Name:              "UNIUNI-MT-报价",
		Keywords:          []string{"GOFO", "UNIUNI", "MT"},
		SheetSide:         model.SplitRight,
		AllowedWarehouses: []string{"91730", "60632"},
		Family:            model.FamilySmallParcel,
		FuelMode:          model.FuelNone,
		ZoneSource:        model.ZoneGeneral,
		WeightPrecision:   1,
	},
	{
		Name:              "USPS-YSD-报价",
		Keywords:          []string{"USPS", "YSD"},
		AllowedWarehouses: []string{"91730", "91752", "60632"},
		Family:            model.FamilyPostal,
		FuelMode:          model.FuelIncluded,
		ZoneSource:        model.ZoneGeneral,
		WeightPrecision:   1,
		NoPeak:            true,
	},
	{
		Name:              "FedEx-632-MT-报价",
		Keywords:          []string{"632"},
		AllowedWarehouses: allWarehouses,
		Family:            model.FamilyStandard,
		FuelMode:          model.FuelDiscount85,
		ZoneSource:        model.ZoneGeneral,
		Fees:              model.Fees{Residential: 2.61, Signature: 4.37},
		WeightPrecision:   0.1,
		ResidentialSplit:  true,
	},
	{
		Name:              "FedEx-MT-超大包裹-报价",
		Keywords:          []string{"超大包裹"},
		AllowedWarehouses: allWarehouses,
		FuelMode:          model.FuelDiscount85,
		ZoneSource:        model.ZoneGeneral,
		Fees:              model.Fees{Residential: 2.61, Signature: 4.37},
		WeightPrecision:   0.1,
		ResidentialSplit:  true,
	},
	{
		Name:              "FedEx-ECO-MT报价",
		Keywords:          []string{"ECO", "MT"},
		AllowedWarehouses: allWarehouses,
		Family:            model.FamilyStandard,
		FuelMode:          model.FuelIncluded,
		ZoneSource:        model.ZoneGeneral,
		WeightPrecision:   0.1,
	},
	{
		Name:              "FedEx-MT-危险品-报价",
		Keywords:          []string{"危险品"},
		AllowedWarehouses: []string{"60632", "08691", "06801", "11791", "07032"},
		Family:            model.FamilyStandard,
		FuelMode:          model.FuelStandard,
		ZoneSource:        model.ZoneGeneral,
		Fees:              model.Fees{Residential: 3.32, Signature: 9.71},
		WeightPrecision:   0.1,
	},
	{
		Name:              "GOFO大件-MT-报价",
		Keywords:          []string{"GOFO大件", "MT"},
		AllowedWarehouses: []string{"91730", "91752", "08691", "06801", "11791", "07032"},
		FuelMode:          model.FuelStandard,
		ZoneSource:        model.ZoneGofo,
		Fees:              model.Fees{Residential: 2.93},
		WeightPrecision:   1,
	},
	{
		Name:              "XLmiles-报价",
		Keywords:          []string{"XLmiles"},
		AllowedWarehouses: []string{"91730"},
		Family:            model.FamilyOversize,
		FuelMode:          model.FuelNone,
		ZoneSource:        model.ZoneXLMiles,
		Fees:              model.Fees{Signature: 10.20},
		WeightPrecision:   0.1,
		MultiService:      true,
	},
}

// Warehouses returns the warehouse registry keyed by zip code
func Warehouses() map[string]model.Warehouse {
	out := make(map[string]model.Warehouse, len(warehouses))
	for _, wh := range warehouses {
		out[wh.Code] = wh
	}
	return out
}

// WarehouseCodes returns warehouse codes sorted ascending
func WarehouseCodes() []string {
	codes := make([]string, 0, len(warehouses))
	for _, wh := range warehouses {
		codes = append(codes, wh.Code)
	}
	sort.Strings(codes)
	return codes
}

// Warehouse looks up a single warehouse
func Warehouse(code string) (model.Warehouse, bool) {
	for _, wh := range warehouses {
		if wh.Code == code {
			return wh, true
		}
	}
	return model.Warehouse{}, false
}

// Channels returns every channel configuration in declaration order
func Channels() []model.ChannelConfig {
	out := make([]model.ChannelConfig, 0, len(channels))
	for _, ch := range channels {
		out = append(out, cloneChannel(ch))
	}
	return out
}

// ChannelMap returns the channel configurations keyed by name
func ChannelMap() map[string]model.ChannelConfig {
	out := make(map[string]model.ChannelConfig, len(channels))
	for _, ch := range channels {
		out[ch.Name] = cloneChannel(ch)
	}
	return out
}

// ChannelNames returns the channel names in declaration order
func ChannelNames() []string {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name)
	}
	return names
}

// Channel looks up a single channel configuration by name
func Channel(name string) (model.ChannelConfig, bool) {
	for _, ch := range channels {
		if ch.Name == name {
			return cloneChannel(ch), true
		}
	}
	return model.ChannelConfig{}, false
}

func cloneChannel(ch model.ChannelConfig) model.ChannelConfig {
	ch.Keywords = append([]string(nil), ch.Keywords...)
	ch.Exclude = append([]string(nil), ch.Exclude...)
	ch.AllowedWarehouses = append([]string(nil), ch.AllowedWarehouses...)
	return ch
}
