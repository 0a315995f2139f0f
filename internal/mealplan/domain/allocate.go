package domain

import "strings"

// MealPrices are the per-person unit prices used to value bundled meals.
type MealPrices struct {
	Breakfast    float64
	Lunch        float64
	Dinner       float64
	AllInclusive float64
}

// Allocation is the meal value carved out of a night's rate.
type Allocation struct {
	Total        float64
	Breakfast    float64
	Lunch        float64
	Dinner       float64
	AllInclusive float64
}

// ResolvePlan matches a rate-check row's meal plan reference against the
// hotel's plans, short code first, then full plan name, case-insensitive.
func ResolvePlan(plans []MealPlanRule, mealPlan string) *MealPlanRule {
	ref := strings.ToLower(strings.TrimSpace(mealPlan))
	if ref == "" {
		return nil
	}
	for i := range plans {
		if strings.ToLower(strings.TrimSpace(plans[i].ShortCode)) == ref {
			return &plans[i]
		}
	}
	for i := range plans {
		if strings.ToLower(strings.TrimSpace(plans[i].MealPlan)) == ref {
			return &plans[i]
		}
	}
	return nil
}

// Allocate values the meals bundled into one night. Children count at half
// weight. An all-inclusive plan supersedes the itemized meal flags.
func Allocate(adults, children int, plan *MealPlanRule, prices MealPrices) Allocation {
	if plan == nil {
		return Allocation{}
	}

	personEquivalent := float64(adults) + float64(children)/2

	if plan.AI {
		amount := prices.AllInclusive * personEquivalent
		return Allocation{Total: amount, AllInclusive: amount}
	}

	var alloc Allocation
	if plan.BreakFast {
		alloc.Breakfast = prices.Breakfast * personEquivalent
	}
	if plan.Lunch {
		alloc.Lunch = prices.Lunch * personEquivalent
	}
	if plan.Dinner {
		alloc.Dinner = prices.Dinner * personEquivalent
	}
	alloc.Total = alloc.Breakfast + alloc.Lunch + alloc.Dinner
	return alloc
}
