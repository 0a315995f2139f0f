package taxengine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeInclusive_ZeroRules(t *testing.T) {
	res := ComputeInclusiveFromExclusive(250, nil)
	assert.Equal(t, 250.0, res.ExclusiveBase)
	assert.Equal(t, 250.0, res.InclusiveTotal)
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Unresolved)
}

func TestComputeInclusive_CascadingLadder(t *testing.T) {
	rules := []Rule{
		{Name: "SERVICE", Percentage: 10, CalcBasedOn: "Base"},
		{Name: "VAT", Percentage: 18, CalcBasedOn: "Base+SERVICE"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.Empty(t, res.Unresolved)
	if assert.Len(t, res.Lines, 2) {
		assert.Equal(t, "SERVICE", res.Lines[0].Label)
		assert.InDelta(t, 10.0, res.Lines[0].Amount, 1e-9)
		assert.Equal(t, "VAT", res.Lines[1].Label)
		assert.InDelta(t, 110.0, res.Lines[1].Base, 1e-9)
		assert.InDelta(t, 19.8, res.Lines[1].Amount, 1e-9)
	}
	assert.InDelta(t, 129.8, res.InclusiveTotal, 1e-9)
}

func TestComputeInclusive_OrderIndependent(t *testing.T) {
	// VAT listed before the tax it depends on still resolves.
	rules := []Rule{
		{Name: "VAT", Percentage: 18, CalcBasedOn: "base + service"},
		{Name: "Service", Percentage: 10, CalcBasedOn: "BASE"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.Empty(t, res.Unresolved)
	assert.InDelta(t, 129.8, res.InclusiveTotal, 1e-9)
}

func TestComputeInclusive_UnknownReference(t *testing.T) {
	rules := []Rule{
		{Name: "SERVICE", Percentage: 10, CalcBasedOn: "Base"},
		{Name: "CITY", Percentage: 5, CalcBasedOn: "Base+GHOST"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.Equal(t, []string{"CITY"}, res.Unresolved)
	if assert.Len(t, res.Lines, 1) {
		assert.Equal(t, "SERVICE", res.Lines[0].Label)
	}
	// The blocked rule contributes zero; the rest still computes.
	assert.InDelta(t, 110.0, res.InclusiveTotal, 1e-9)
}

func TestComputeInclusive_SelfReference(t *testing.T) {
	rules := []Rule{
		{Name: "LOOP", Percentage: 10, CalcBasedOn: "Base+LOOP"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.Equal(t, []string{"LOOP"}, res.Unresolved)
	assert.InDelta(t, 100.0, res.InclusiveTotal, 1e-9)
}

func TestComputeInclusive_Cycle(t *testing.T) {
	rules := []Rule{
		{Name: "A", Percentage: 10, CalcBasedOn: "Base+B"},
		{Name: "B", Percentage: 5, CalcBasedOn: "Base+A"},
		{Name: "C", Percentage: 8, CalcBasedOn: "Base"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.ElementsMatch(t, []string{"A", "B"}, res.Unresolved)
	if assert.Len(t, res.Lines, 1) {
		assert.Equal(t, "C", res.Lines[0].Label)
	}
}

func TestComputeInclusive_DependentOfBlockedRuleStaysUnresolved(t *testing.T) {
	rules := []Rule{
		{Name: "A", Percentage: 10, CalcBasedOn: "Base+GHOST"},
		{Name: "B", Percentage: 5, CalcBasedOn: "Base+A"},
	}

	res := ComputeInclusiveFromExclusive(100, rules)
	assert.ElementsMatch(t, []string{"A", "B"}, res.Unresolved)
	assert.Empty(t, res.Lines)
}

func TestComputeInclusive_Deterministic(t *testing.T) {
	rules := []Rule{
		{Name: "SVC", Percentage: 10, CalcBasedOn: "Base"},
		{Name: "VAT", Percentage: 12, CalcBasedOn: "Base+SVC"},
		{Name: "CITY", Percentage: 2, CalcBasedOn: "Base+SVC+VAT"},
	}

	first := ComputeInclusiveFromExclusive(987.65, rules)
	second := ComputeInclusiveFromExclusive(987.65, rules)
	assert.Equal(t, first, second)
}

func TestReverse_Degenerate(t *testing.T) {
	res := ReverseExclusiveFromInclusive(0, []Rule{{Name: "VAT", Percentage: 18, CalcBasedOn: "Base"}})
	assert.Equal(t, 0.0, res.Base)
	assert.Equal(t, 1.0, res.Factor)

	res = ReverseExclusiveFromInclusive(118, nil)
	assert.Equal(t, 118.0, res.Base)
	assert.Equal(t, 1.0, res.Factor)
}

func TestReverse_SingleRate(t *testing.T) {
	rules := []Rule{{Name: "VAT", Percentage: 18, CalcBasedOn: "Base"}}
	res := ReverseExclusiveFromInclusive(118, rules)
	assert.InDelta(t, 100.0, res.Base, 1e-9)
	assert.InDelta(t, 1.18, res.Factor, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	rules := []Rule{
		{Name: "SERVICE", Percentage: 10, CalcBasedOn: "Base"},
		{Name: "VAT", Percentage: 18, CalcBasedOn: "Base+SERVICE"},
		{Name: "CITY", Percentage: 1.5, CalcBasedOn: "Base+SERVICE+VAT"},
	}

	for _, base := range []float64{0, 1, 99.99, 1234.56, 100000} {
		forward := ComputeInclusiveFromExclusive(base, rules)
		assert.Empty(t, forward.Unresolved)

		back := ReverseExclusiveFromInclusive(forward.InclusiveTotal, rules)
		assert.True(t, math.Abs(back.Base-base) < 1e-6,
			"round trip drifted for base %v: got %v", base, back.Base)
	}
}
