package quote

import (
	"slices"

	"freight-quote/internal/model"
)

// Location describes what the bundle knows about a destination zip
type Location struct {
	Zip      string
	Locality *model.ZipLocality
	Remote   bool
}

// LocateZip looks a zip up in the GOFO zip table and the FedEx remote-area list
func LocateZip(b *model.Bundle, zip string) Location {
	loc := Location{Zip: zip}
	if l, ok := b.GofoZips[zip]; ok {
		loc.Locality = &l
	}
	loc.Remote = slices.Contains(b.RemoteZips, zip)
	return loc
}
