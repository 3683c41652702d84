package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialNormalizer_Normalize(t *testing.T) {
	n := newMaterialNormalizer(DefaultMaterialSuffixes(), DefaultMaterialPrefixes())

	tests := []struct {
		in   string
		want string
	}{
		{"304 SS", "304"},
		{"AISI 304 Stainless Steel", "304"},
		{"304 stainless", "304"},
		{"A36 CARBON STEEL", "a36"},
		{"A36", "a36"},
		{"6061-T6 Aluminum", "6061t6"},
		{"ＳＳ３０４", "ss304"},
		{"Steel", "steel"},
		{"Type 316L SST", "316l"},
		{"1018 CRS", "1018"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Normalize(tc.in))
		})
	}
}

func TestMaterialNormalizer_Equivalent(t *testing.T) {
	n := newMaterialNormalizer(DefaultMaterialSuffixes(), DefaultMaterialPrefixes())

	assert.True(t, n.Equivalent("304 SS", "aisi 304 stainless steel"))
	assert.True(t, n.Equivalent("5052-H32 AL", "5052 H32 ALUMINUM"))
	assert.False(t, n.Equivalent("304 SS", "316 SS"))
	assert.False(t, n.Equivalent("304 SS", "A36 CARBON STEEL"))
}

func TestParseThickness(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.125", 0.125, true},
		{".125", 0.125, true},
		{`0.125"`, 0.125, true},
		{"0.125 IN", 0.125, true},
		{"0.125 in. THK", 0.125, true},
		{"1/8", 0.125, true},
		{"1 1/4", 1.25, true},
		{"3/16 THICK", 0.1875, true},
		{"25.4 MM", 1, true},
		{"2,54 cm", 1, true},
		{"T=0.060", 0.06, true},
		{"16 GA", 0.0598, true},
		{"10 GAUGE", 0.1345, true},
		{"21 GA", 0, false},
		{"0", 0, false},
		{"1/0", 0, false},
		{"", 0, false},
		{"SEE NOTE", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseThickness(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestFormatInches(t *testing.T) {
	assert.Equal(t, "0.125 in", formatInches(0.125))
	assert.Equal(t, "0.1181 in", formatInches(3/mmPerInch))
	assert.Equal(t, "1 in", formatInches(1))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, normalizeText("Mounting  Bracket "), normalizeText("MOUNTING BRACKET"))
	assert.NotEqual(t, normalizeText("BRACKET A"), normalizeText("BRACKET B"))
}
