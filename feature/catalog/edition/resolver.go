package edition

import (
	"strings"
)

const (
	lowFactor  = 0.8
	highFactor = 1.5
)

// Quote is one raw price bucket. Nil fields were absent in the catalog payload.
type Quote struct {
	Low    *float64
	Market *float64
	High   *float64
}

// Prices is a resolved price triple.
type Prices struct {
	Low    float64
	Market float64
	High   float64
}

// Data is one edition derived from a base card's price buckets.
type Data struct {
	Edition       Edition
	SourceVariant string
	Prices        Prices
}

// Resolve expands a base card's price buckets into editions.
//
// A bucket counts only with a positive market price; a missing or non-positive
// low/high is derived from market. When several buckets map to one edition the
// one with the longer key wins ("unlimitedHolofoil" over "holofoil"), equal
// lengths fall back to the lexically smaller key. If nothing is priced, a single
// zero-priced Unlimited edition is returned so every card is materialised.
func Resolve(quotes map[string]Quote) []Data {
	best := make(map[Edition]Data)

	for key, q := range quotes {
		ed, ok := ParseVariant(key).Edition()
		if !ok {
			continue
		}
		if q.Market == nil || *q.Market <= 0 {
			continue
		}

		candidate := Data{
			Edition:       ed,
			SourceVariant: key,
			Prices:        priced(q),
		}

		current, seen := best[ed]
		if !seen || moreSpecific(key, current.SourceVariant) {
			best[ed] = candidate
		}
	}

	if len(best) == 0 {
		return []Data{{Edition: Unlimited}}
	}

	out := make([]Data, 0, len(best))
	for _, ed := range editionOrder {
		if d, ok := best[ed]; ok {
			out = append(out, d)
		}
	}
	return out
}

func priced(q Quote) Prices {
	market := *q.Market
	p := Prices{
		Market: market,
		Low:    market * lowFactor,
		High:   market * highFactor,
	}
	if q.Low != nil && *q.Low > 0 {
		p.Low = *q.Low
	}
	if q.High != nil && *q.High > 0 {
		p.High = *q.High
	}
	return p
}

func moreSpecific(candidate, current string) bool {
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return candidate < current
}

// Slug lowercases name, turns spaces into hyphens and drops anything outside [a-z0-9-].
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ID derives the edition card id from the base card id and edition label.
func ID(baseCardID string, ed Edition) string {
	return baseCardID + "-" + Slug(string(ed))
}
