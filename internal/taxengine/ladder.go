package taxengine

import "strings"

// Layer identifies a step of the ordered tax ladder used for hotel-level
// posting rules: every rule in a layer is computed on the running
// subtotal left by the previous layers. This is the fixed-order special
// case of the general resolver, for rule sets that do not need the named
// dependency grammar.
type Layer int

const (
	LayerBase Layer = iota
	LayerSubtotal1
	LayerSubtotal2
	LayerSubtotal3
	LayerSubtotal4

	layerCount
)

// ParseLayer maps a CalcBasedOn value from the Base|Subtotal1..4 enum to
// its Layer. Unrecognized values fall back to LayerBase with ok=false.
func ParseLayer(value string) (Layer, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "base", "":
		return LayerBase, value != ""
	case "subtotal1":
		return LayerSubtotal1, true
	case "subtotal2":
		return LayerSubtotal2, true
	case "subtotal3":
		return LayerSubtotal3, true
	case "subtotal4":
		return LayerSubtotal4, true
	default:
		return LayerBase, false
	}
}

// LadderRule is one rule of the ordered ladder.
type LadderRule struct {
	Name       string
	Percentage float64 // decimal percent, 10 = 10%
	Layer      Layer
}

// LadderShare is one rule's slice of a tax-inclusive amount.
type LadderShare struct {
	Rule   LadderRule
	Base   float64
	Amount float64
}

// InclusiveFactor returns the multiplier that turns a tax-exclusive base
// into its tax-inclusive total, compounding each layer's percentage sum
// in ladder order.
func InclusiveFactor(rules []LadderRule) float64 {
	var pct [layerCount]float64
	for _, r := range rules {
		pct[r.Layer] += r.Percentage
	}
	factor := 1.0
	for _, p := range pct {
		factor *= 1 + p/100
	}
	return factor
}

// InclusiveToBase strips the ladder's taxes from a tax-inclusive amount.
func InclusiveToBase(gross float64, rules []LadderRule) float64 {
	return gross / InclusiveFactor(rules)
}

// SplitInclusive decomposes a tax-inclusive amount into its exclusive
// base and each rule's tax amount, advancing a running subtotal layer by
// layer so later layers compound on earlier ones. The base plus all
// share amounts reconstructs gross up to floating-point error.
func SplitInclusive(gross float64, rules []LadderRule) (float64, []LadderShare) {
	base := InclusiveToBase(gross, rules)
	running := base

	var shares []LadderShare
	for layer := LayerBase; layer < layerCount; layer++ {
		layerAmount := 0.0
		for _, r := range rules {
			if r.Layer != layer || r.Percentage == 0 {
				continue
			}
			amount := running * r.Percentage / 100
			shares = append(shares, LadderShare{Rule: r, Base: running, Amount: amount})
			layerAmount += amount
		}
		running += layerAmount
	}
	return base, shares
}
