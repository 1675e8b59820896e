package edition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestResolve_DedupPrefersLongerKey(t *testing.T) {
	got := Resolve(map[string]Quote{
		"holofoil":          {Market: f(5)},
		"unlimitedHolofoil": {Market: f(7)},
	})

	require.Len(t, got, 1)
	assert.Equal(t, Unlimited, got[0].Edition)
	assert.Equal(t, "unlimitedHolofoil", got[0].SourceVariant)
	assert.Equal(t, 7.0, got[0].Prices.Market)
}

func TestResolve_DedupIsOrderIndependent(t *testing.T) {
	quotes := map[string]Quote{
		"normal":    {Market: f(1)},
		"unlimited": {Market: f(2)},
		"holofoil":  {Market: f(3)},
	}
	for i := 0; i < 20; i++ {
		got := Resolve(quotes)
		require.Len(t, got, 1)
		assert.Equal(t, "unlimited", got[0].SourceVariant)
	}
}

func TestResolve_MapsAndOrdersEditions(t *testing.T) {
	got := Resolve(map[string]Quote{
		"reverseHolofoil":    {Market: f(2)},
		"1stEditionHolofoil": {Market: f(300), Low: f(250), High: f(400)},
		"unlimitedHolofoil":  {Market: f(40)},
		"mysteryFoil":        {Market: f(99)},
	})

	require.Len(t, got, 3)
	assert.Equal(t, FirstEdition, got[0].Edition)
	assert.Equal(t, Prices{Low: 250, Market: 300, High: 400}, got[0].Prices)
	assert.Equal(t, Unlimited, got[1].Edition)
	assert.Equal(t, ReverseHolofoil, got[2].Edition)
}

func TestResolve_SynthesisesMissingLowHigh(t *testing.T) {
	got := Resolve(map[string]Quote{"normal": {Market: f(10)}})

	require.Len(t, got, 1)
	assert.InDelta(t, 8.0, got[0].Prices.Low, 1e-9)
	assert.InDelta(t, 15.0, got[0].Prices.High, 1e-9)
}

func TestResolve_FallbackEdition(t *testing.T) {
	tests := []struct {
		name   string
		quotes map[string]Quote
	}{
		{"Nil", nil},
		{"ZeroMarket", map[string]Quote{"holofoil": {Market: f(0), Low: f(1)}}},
		{"MissingMarket", map[string]Quote{"normal": {Low: f(1), High: f(2)}}},
		{"UnknownOnly", map[string]Quote{"stamped": {Market: f(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.quotes)
			require.Len(t, got, 1)
			assert.Equal(t, Data{Edition: Unlimited}, got[0])
		})
	}
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantReverseHolofoil, ParseVariant("reverseHolofoil"))
	assert.Equal(t, VariantUnknown, ParseVariant("ReverseHolofoil"))

	ed, ok := VariantFirstEdition.Edition()
	assert.True(t, ok)
	assert.Equal(t, FirstEdition, ed)

	_, ok = VariantUnknown.Edition()
	assert.False(t, ok)
}

func TestID(t *testing.T) {
	assert.Equal(t, "base1-4-1st-edition", ID("base1-4", FirstEdition))
	assert.Equal(t, ID("base1-4", FirstEdition), ID("base1-4", FirstEdition))
	assert.Equal(t, "xy7-54-reverse-holofoil", ID("xy7-54", ReverseHolofoil))
	assert.Equal(t, "base1-4-unlimited", ID("base1-4", Unlimited))
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"1st Edition":      "1st-edition",
		"Reverse Holofoil": "reverse-holofoil",
		"Shadowless!":      "shadowless",
		"Poké Ball":        "pok-ball",
		"already-slugged":  "already-slugged",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestEditionValid(t *testing.T) {
	assert.True(t, Shadowless.Valid())
	assert.False(t, Edition("Stamped").Valid())
}
