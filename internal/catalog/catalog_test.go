package catalog

import (
	"testing"

	"freight-quote/internal/model"
)

func TestChannelsDeclarationOrder(t *testing.T) {
	names := ChannelNames()
	if len(names) != 10 {
		t.Fatalf("Expected 10 channels, got %d", len(names))
	}
	if names[0] != "GOFO-报价" || names[len(names)-1] != "XLmiles-报价" {
		t.Errorf("Unexpected order: %v", names)
	}
}

func TestChannelsAreCopies(t *testing.T) {
	chs := Channels()
	chs[0].Keywords[0] = "MUTATED"
	chs[0].AllowedWarehouses = nil

	again, ok := Channel("GOFO-报价")
	if !ok {
		t.Fatal("GOFO-报价 not found")
	}
	if again.Keywords[0] != "GOFO" {
		t.Errorf("Registry was mutated through a returned copy: %v", again.Keywords)
	}
	if len(again.AllowedWarehouses) != 2 {
		t.Errorf("Expected 2 warehouses, got %v", again.AllowedWarehouses)
	}
}

func TestChannelInvariants(t *testing.T) {
	for _, ch := range Channels() {
		if len(ch.Keywords) == 0 {
			t.Errorf("%s: no keywords", ch.Name)
		}
		for _, code := range ch.AllowedWarehouses {
			if _, ok := Warehouse(code); !ok {
				t.Errorf("%s: unknown warehouse %s", ch.Name, code)
			}
		}
		if ch.MultiService && ch.Family != model.FamilyOversize {
			t.Errorf("%s: multi-service tables are only used by oversize channels", ch.Name)
		}
		if ch.ResidentialSplit && ch.SheetSide != model.SplitNone {
			t.Errorf("%s: residential split and side split are exclusive", ch.Name)
		}
	}
}

func TestWarehouseLookup(t *testing.T) {
	tests := []struct {
		code     string
		region   model.Region
		expected bool
	}{
		{"91730", model.RegionWest, true},
		{"60632", model.RegionCentral, true},
		{"08691", model.RegionEast, true},
		{"99999", "", false},
	}

	for _, tt := range tests {
		wh, ok := Warehouse(tt.code)
		if ok != tt.expected {
			t.Errorf("Warehouse(%s) found = %v, expected %v", tt.code, ok, tt.expected)
			continue
		}
		if ok && wh.Region != tt.region {
			t.Errorf("Warehouse(%s).Region = %s, expected %s", tt.code, wh.Region, tt.region)
		}
	}
}

func TestStateName(t *testing.T) {
	if got := StateName("CA"); got != "加利福尼亚" {
		t.Errorf("StateName(CA) = %q", got)
	}
	if got := StateName("ZZ"); got != "" {
		t.Errorf("StateName(ZZ) = %q, expected empty", got)
	}
}
