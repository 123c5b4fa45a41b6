package quote

import (
	"freight-quote/internal/model"
)

// Compliance is the physical-limit report for one package
type Compliance struct {
	// Messages are advisory notes for packages approaching carrier limits
	Messages []string

	// Rejected holds every family whose limits the package exceeds
	Rejected map[model.Family]bool
}

// Allows checks if a channel family accepts the package. Channels without a family are never gated.
func (c Compliance) Allows(f model.Family) bool {
	if f == model.FamilyNone {
		return true
	}
	return !c.Rejected[f]
}

// CheckCompliance evaluates a package against every channel family. Limits use actual weight.
func CheckCompliance(p model.Package) Compliance {
	longest := p.Longest()
	girth := p.Girth()
	wt := p.Weight

	var msgs []string
	switch {
	case wt > 200:
		msgs = append(msgs, "weight over 200 lb (rejected by all channels)")
	case wt > 150:
		msgs = append(msgs, "weight 150-200 lb (XLmiles OM only)")
	}
	switch {
	case longest > 144:
		msgs = append(msgs, "length over 144 in (rejected by all channels)")
	case longest > 108:
		msgs = append(msgs, "length 108-144 in (XLmiles only)")
	}
	switch {
	case girth > 225:
		msgs = append(msgs, "girth over 225 in (rejected by all channels)")
	case girth > 165:
		msgs = append(msgs, "girth 165-225 in (XLmiles only)")
	}

	return Compliance{
		Messages: msgs,
		Rejected: map[model.Family]bool{
			model.FamilySmallParcel: wt > 20 || longest > 20,
			model.FamilyPostal:      wt > 70 || girth > 130,
			model.FamilyStandard:    wt > 150 || longest > 108,
			model.FamilyOversize:    wt > 200 || longest > 144 || girth > 225,
		},
	}
}

// serviceTier is one oversize size/weight band; tiers are tried in ascending order
type serviceTier struct {
	service   model.Service
	maxLength float64
	maxGirth  float64
	maxWeight float64
}

var serviceTiers = []serviceTier{
	{model.ServiceAH, 96, 130, 150},
	{model.ServiceOS, 108, 165, 150},
	{model.ServiceOM, 144, 225, 200},
}

// SelectService picks the smallest oversize tier the package fits into
func SelectService(p model.Package) (model.Service, bool) {
	longest := p.Longest()
	girth := p.Girth()
	for _, t := range serviceTiers {
		if longest <= t.maxLength && girth <= t.maxGirth && p.Weight <= t.maxWeight {
			return t.service, true
		}
	}
	return model.ServiceNone, false
}
