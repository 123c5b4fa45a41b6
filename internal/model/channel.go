package model

import (
	"strings"
)

// Region represents the coarse US region a warehouse or destination belongs to
type Region string

const (
	RegionWest    Region = "WEST"
	RegionCentral Region = "CENTRAL"
	RegionEast    Region = "EAST"
)

// GofoTag returns the two-letter region tag used by the GOFO zip tables (WE/CE/EA)
func (r Region) GofoTag() string {
	switch r {
	case RegionWest:
		return "WE"
	case RegionCentral:
		return "CE"
	case RegionEast:
		return "EA"
	default:
		return ""
	}
}

// RegionFromGofoTag maps a GOFO region tag back to a Region
func RegionFromGofoTag(tag string) (Region, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "WE":
		return RegionWest, true
	case "CE":
		return RegionCentral, true
	case "EA":
		return RegionEast, true
	default:
		return "", false
	}
}

// Warehouse is an origin warehouse keyed by its 5-digit zip code
type Warehouse struct {
	Code   string `json:"-"`
	Name   string `json:"name"`
	Region Region `json:"region"`
}

// FuelMode describes how a channel charges fuel surcharge
type FuelMode string

const (
	FuelNone       FuelMode = "none"
	FuelIncluded   FuelMode = "included"
	FuelStandard   FuelMode = "standard"
	FuelDiscount85 FuelMode = "discount_85"
)

// Charged reports whether a fuel line is computed on top of the base price
func (m FuelMode) Charged() bool {
	return m == FuelStandard || m == FuelDiscount85
}

// ZoneSource selects the zone-resolution policy for a channel
type ZoneSource string

const (
	ZoneGofo    ZoneSource = "gofo"
	ZoneGeneral ZoneSource = "general"
	ZoneXLMiles ZoneSource = "xlmiles"
)

// SplitSide selects one half of a sheet holding two side-by-side rate tables
type SplitSide string

const (
	SplitNone  SplitSide = ""
	SplitLeft  SplitSide = "left"
	SplitRight SplitSide = "right"
)

// Family groups channels sharing the same physical compliance limits
type Family string

const (
	FamilyNone        Family = ""
	FamilySmallParcel Family = "small_parcel"
	FamilyPostal      Family = "postal"
	FamilyStandard    Family = "standard_parcel"
	FamilyOversize    Family = "oversize"
)

// Fees holds flat per-shipment fees in USD
type Fees struct {
	Residential float64 `json:"res"`
	Signature   float64 `json:"sig"`
}

// ChannelConfig is the hand-authored static configuration of one carrier channel
type ChannelConfig struct {
	Name string `json:"-"`

	// Sheet location
	Keywords  []string  `json:"keywords"`
	Exclude   []string  `json:"exclude,omitempty"`
	SheetSide SplitSide `json:"sheet_side,omitempty"`

	// Eligibility
	AllowedWarehouses []string `json:"allow_wh"`
	Family            Family   `json:"family,omitempty"`

	// Pricing
	FuelMode         FuelMode   `json:"fuel_mode"`
	ZoneSource       ZoneSource `json:"zone_source"`
	Fees             Fees       `json:"fees"`
	WeightPrecision  float64    `json:"weight_precision"`
	ResidentialSplit bool       `json:"has_res_com_split,omitempty"`
	MultiService     bool       `json:"multi_service,omitempty"`
	NoPeak           bool       `json:"no_peak,omitempty"`
}

// AllowsWarehouse checks if the channel ships from the given warehouse
func (c ChannelConfig) AllowsWarehouse(code string) bool {
	for _, wh := range c.AllowedWarehouses {
		if wh == code {
			return true
		}
	}
	return false
}

// Precision returns the weight rounding unit, defaulting to a whole pound
func (c ChannelConfig) Precision() float64 {
	if c.WeightPrecision <= 0 {
		return 1
	}
	return c.WeightPrecision
}

// FallbackZone returns the zone column used when a row has no price for the resolved zone
func (c ChannelConfig) FallbackZone() int {
	if c.MultiService {
		return 6
	}
	return 8
}

// Service is an oversize service tier embedded in multi-service rate tables
type Service string

const (
	ServiceNone Service = ""
	ServiceAH   Service = "AH"
	ServiceOS   Service = "OS"
	ServiceOM   Service = "OM"
)

// Name returns the display label of a service tier
func (s Service) Name() string {
	switch s {
	case ServiceAH:
		return "AH大件"
	case ServiceOS:
		return "OS大件"
	case ServiceOM:
		return "OM超限"
	default:
		return "超XL规格"
	}
}
