package edition

// Edition is the label of a physically distinct print run.
type Edition string

const (
	Unlimited       Edition = "Unlimited"
	FirstEdition    Edition = "1st Edition"
	Shadowless      Edition = "Shadowless"
	ReverseHolofoil Edition = "Reverse Holofoil"
	Normal          Edition = "Normal"
)

// editionOrder fixes the output order of Resolve.
var editionOrder = []Edition{FirstEdition, Shadowless, Unlimited, Normal, ReverseHolofoil}

// Valid reports whether e is one of the known edition labels.
func (e Edition) Valid() bool {
	for _, known := range editionOrder {
		if e == known {
			return true
		}
	}
	return false
}

// Variant is a price bucket label used by the catalog, e.g. "holofoil".
type Variant int

const (
	// VariantUnknown is any label outside the table below; it never yields an edition.
	VariantUnknown Variant = iota
	VariantFirstEditionHolofoil
	VariantFirstEditionNormal
	VariantFirstEdition
	VariantUnlimitedHolofoil
	VariantUnlimited
	VariantHolofoil
	VariantNormal
	VariantReverseHolofoil
)

var variantKeys = map[string]Variant{
	"1stEditionHolofoil": VariantFirstEditionHolofoil,
	"1stEditionNormal":   VariantFirstEditionNormal,
	"1stEdition":         VariantFirstEdition,
	"unlimitedHolofoil":  VariantUnlimitedHolofoil,
	"unlimited":          VariantUnlimited,
	"holofoil":           VariantHolofoil,
	"normal":             VariantNormal,
	"reverseHolofoil":    VariantReverseHolofoil,
}

// ParseVariant maps a raw catalog key onto a Variant. Matching is exact.
func ParseVariant(key string) Variant {
	if v, ok := variantKeys[key]; ok {
		return v
	}
	return VariantUnknown
}

// Edition returns the edition a variant prices. Bare holofoil and normal are
// the unlimited print, which is what the catalog means in the common case.
func (v Variant) Edition() (Edition, bool) {
	switch v {
	case VariantFirstEditionHolofoil, VariantFirstEditionNormal, VariantFirstEdition:
		return FirstEdition, true
	case VariantUnlimitedHolofoil, VariantUnlimited, VariantHolofoil, VariantNormal:
		return Unlimited, true
	case VariantReverseHolofoil:
		return ReverseHolofoil, true
	default:
		return "", false
	}
}
