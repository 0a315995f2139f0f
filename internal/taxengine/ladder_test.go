package taxengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLayer(t *testing.T) {
	cases := []struct {
		in    string
		layer Layer
		ok    bool
	}{
		{"Base", LayerBase, true},
		{" base ", LayerBase, true},
		{"Subtotal1", LayerSubtotal1, true},
		{"SUBTOTAL4", LayerSubtotal4, true},
		{"", LayerBase, false},
		{"Subtotal9", LayerBase, false},
	}
	for _, c := range cases {
		layer, ok := ParseLayer(c.in)
		assert.Equal(t, c.layer, layer, c.in)
		assert.Equal(t, c.ok, ok, c.in)
	}
}

func TestInclusiveFactor_Compounds(t *testing.T) {
	rules := []LadderRule{
		{Name: "Service Charge", Percentage: 10, Layer: LayerBase},
		{Name: "VAT", Percentage: 18, Layer: LayerSubtotal1},
	}
	// 1.10 * 1.18
	assert.InDelta(t, 1.298, InclusiveFactor(rules), 1e-9)
}

func TestInclusiveFactor_SameLayerAddsBeforeCompounding(t *testing.T) {
	rules := []LadderRule{
		{Name: "Service", Percentage: 10, Layer: LayerBase},
		{Name: "City", Percentage: 5, Layer: LayerBase},
		{Name: "VAT", Percentage: 18, Layer: LayerSubtotal1},
	}
	// (1 + 0.15) * 1.18
	assert.InDelta(t, 1.357, InclusiveFactor(rules), 1e-9)
}

func TestSplitInclusive_Reconstructs(t *testing.T) {
	rules := []LadderRule{
		{Name: "Service", Percentage: 10, Layer: LayerBase},
		{Name: "VAT", Percentage: 18, Layer: LayerSubtotal1},
	}

	base, shares := SplitInclusive(129.8, rules)
	assert.InDelta(t, 100.0, base, 1e-9)

	total := base
	for _, s := range shares {
		total += s.Amount
	}
	assert.InDelta(t, 129.8, total, 1e-9)

	if assert.Len(t, shares, 2) {
		assert.Equal(t, "Service", shares[0].Rule.Name)
		assert.InDelta(t, 10.0, shares[0].Amount, 1e-9)
		// VAT compounds on base + service.
		assert.InDelta(t, 110.0, shares[1].Base, 1e-9)
		assert.InDelta(t, 19.8, shares[1].Amount, 1e-9)
	}
}

func TestSplitInclusive_NoRules(t *testing.T) {
	base, shares := SplitInclusive(500, nil)
	assert.Equal(t, 500.0, base)
	assert.Empty(t, shares)
}
