// Package zone resolves a shipping zone from the origin warehouse, the destination
// zip and the channel's zone-source mode. It is the only copy of the carrier
// breakpoint tables.
package zone

import (
	"freight-quote/internal/model"
)

// Fallback is returned for destinations that cannot be placed
const Fallback = 8

// Resolver is a pure lookup over immutable warehouse and zip reference data.
// It is safe for concurrent use.
type Resolver struct {
	warehouses map[string]model.Warehouse
	localities map[string]model.ZipLocality
}

// NewResolver creates a resolver over the warehouse registry and the GOFO zip table
func NewResolver(warehouses map[string]model.Warehouse, localities map[string]model.ZipLocality) *Resolver {
	return &Resolver{warehouses: warehouses, localities: localities}
}

// Resolve returns the zone for a shipment. It always returns a zone.
func (r *Resolver) Resolve(destZip, originCode string, mode model.ZoneSource) int {
	if len(destZip) < 3 {
		return Fallback
	}

	prefix := zipPrefix(destZip)

	if mode == model.ZoneXLMiles {
		return xlmilesTable.lookup(prefix)
	}

	origin, ok := r.warehouses[originCode]
	if !ok {
		return Fallback
	}

	if mode == model.ZoneGofo {
		return r.gofoZone(destZip, origin.Region)
	}

	table, ok := generalTables[origin.Region]
	if !ok {
		return Fallback
	}
	return table.lookup(prefix)
}

func (r *Resolver) gofoZone(destZip string, origin model.Region) int {
	loc, ok := r.localities[destZip]
	if !ok {
		return Fallback
	}
	dest, ok := model.RegionFromGofoTag(loc.Region)
	if !ok {
		return Fallback
	}
	if dest == origin {
		return 2
	}
	if z, ok := gofoMatrix[origin][dest]; ok {
		return z
	}
	return Fallback
}

// zipPrefix returns the first three digits as a number, or -1 (matches no range)
func zipPrefix(zip string) int {
	n := 0
	for _, c := range zip[:3] {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
