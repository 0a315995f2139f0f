// Package taxengine converts between tax-inclusive and tax-exclusive
// monetary amounts for rule sets where a tax may be computed on the base
// alone or on the base plus other taxes (cascading tax ladders).
//
// The package is pure computation: no I/O, no shared state, safe for
// concurrent use. Amounts are not rounded here; callers round at the
// point where values are emitted or aggregated.
package taxengine

import "strings"

const baseToken = "base"

// Rule is one tax definition. CalcBasedOn is a formula of the form
// "Token(+Token)*" where Token is the literal "Base" or another rule's
// Name, case-insensitively, with surrounding whitespace ignored. The
// referenced amounts are summed to form the base this rule's percentage
// applies to.
type Rule struct {
	Name        string
	Percentage  float64 // decimal percent, 10 = 10%
	CalcBasedOn string
}

// ForwardLine records one resolved tax amount.
type ForwardLine struct {
	Label       string
	Base        float64 // the summed amount the rate was applied to
	Rate        float64 // Percentage / 100
	Percentage  float64
	Amount      float64
	CalcBasedOn string
}

// ForwardResult is the outcome of an exclusive-to-inclusive computation.
// Rules that could not be resolved (unknown references, self references,
// cycles) are listed in Unresolved and contribute zero to the total; they
// are never silently computed wrong or dropped.
type ForwardResult struct {
	ExclusiveBase  float64
	InclusiveTotal float64
	Lines          []ForwardLine
	Unresolved     []string
}

// ReverseResult is the outcome of an inclusive-to-exclusive computation.
type ReverseResult struct {
	Base       float64
	Factor     float64
	Unresolved []string
}

// ComputeInclusiveFromExclusive resolves every rule against the given
// tax-exclusive base and returns the inclusive total alongside the
// per-rule amounts.
func ComputeInclusiveFromExclusive(exclusiveBase float64, rules []Rule) ForwardResult {
	return resolve(exclusiveBase, rules)
}

// ReverseExclusiveFromInclusive derives the tax-exclusive base contained
// in a tax-inclusive amount. Every tax is a linear function of the base
// under a fixed rule graph, so the inclusive/exclusive ratio is scale
// invariant: probing the ladder at base 1 yields the factor directly
// without solving simultaneous equations.
func ReverseExclusiveFromInclusive(inclusive float64, rules []Rule) ReverseResult {
	if inclusive == 0 || len(rules) == 0 {
		return ReverseResult{Base: inclusive, Factor: 1}
	}
	probe := resolve(1, rules)
	return ReverseResult{
		Base:       inclusive / probe.InclusiveTotal,
		Factor:     probe.InclusiveTotal,
		Unresolved: probe.Unresolved,
	}
}

// resolve evaluates the rule graph with the given base seeded into the
// symbol table. Resolution is a topological walk over the dependency
// graph implied by CalcBasedOn: a rule referencing an unknown name or
// itself is blocked outright, and members of a cycle never reach zero
// in-degree, so both surface in Unresolved. The walk visits each edge
// once, and the queue is seeded and drained in input order to keep the
// output deterministic.
func resolve(base float64, rules []Rule) ForwardResult {
	symbols := map[string]float64{baseToken: base}

	names := make(map[string]int, len(rules))
	for i, r := range rules {
		names[normalize(r.Name)] = i
	}

	indegree := make([]int, len(rules))
	dependents := make([][]int, len(rules))
	blocked := make([]bool, len(rules))
	deps := make([][]string, len(rules))

	for i, r := range rules {
		deps[i] = tokens(r.CalcBasedOn)
		for _, tok := range deps[i] {
			if tok == baseToken {
				continue
			}
			dep, ok := names[tok]
			if !ok || dep == i {
				blocked[i] = true
				continue
			}
			dependents[dep] = append(dependents[dep], i)
			indegree[i]++
		}
	}

	queue := make([]int, 0, len(rules))
	for i := range rules {
		if indegree[i] == 0 && !blocked[i] {
			queue = append(queue, i)
		}
	}

	resolved := make([]bool, len(rules))
	result := ForwardResult{ExclusiveBase: base, InclusiveTotal: base}

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		r := rules[i]
		sum := 0.0
		for _, tok := range deps[i] {
			sum += symbols[tok]
		}

		rate := r.Percentage / 100
		amount := sum * rate
		symbols[normalize(r.Name)] = amount
		resolved[i] = true

		result.Lines = append(result.Lines, ForwardLine{
			Label:       r.Name,
			Base:        sum,
			Rate:        rate,
			Percentage:  r.Percentage,
			Amount:      amount,
			CalcBasedOn: r.CalcBasedOn,
		})
		result.InclusiveTotal += amount

		for _, next := range dependents[i] {
			indegree[next]--
			if indegree[next] == 0 && !blocked[next] {
				queue = append(queue, next)
			}
		}
	}

	for i, r := range rules {
		if !resolved[i] {
			result.Unresolved = append(result.Unresolved, r.Name)
		}
	}

	return result
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func tokens(expr string) []string {
	parts := strings.Split(expr, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
