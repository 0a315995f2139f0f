package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPrices = MealPrices{
	Breakfast:    10,
	Lunch:        15,
	Dinner:       20,
	AllInclusive: 60,
}

func TestAllocateNilPlan(t *testing.T) {
	alloc := Allocate(2, 1, nil, testPrices)
	assert.Zero(t, alloc.Total)
	assert.Zero(t, alloc.Breakfast)
}

func TestAllocateChildrenHalfWeight(t *testing.T) {
	plan := &MealPlanRule{MealPlan: "Bed & Breakfast", BreakFast: true}

	// 2 adults + 1 child = 2.5 person equivalents
	alloc := Allocate(2, 1, plan, testPrices)
	assert.InDelta(t, 25, alloc.Breakfast, 1e-9)
	assert.InDelta(t, 25, alloc.Total, 1e-9)
	assert.Zero(t, alloc.Lunch)
	assert.Zero(t, alloc.Dinner)
	assert.Zero(t, alloc.AllInclusive)
}

func TestAllocateIndependentFlags(t *testing.T) {
	plan := &MealPlanRule{MealPlan: "Half Board", BreakFast: true, Dinner: true}

	alloc := Allocate(2, 0, plan, testPrices)
	assert.InDelta(t, 20, alloc.Breakfast, 1e-9)
	assert.Zero(t, alloc.Lunch)
	assert.InDelta(t, 40, alloc.Dinner, 1e-9)
	assert.InDelta(t, 60, alloc.Total, 1e-9)
}

func TestAllocateAISupersedesItemized(t *testing.T) {
	plan := &MealPlanRule{MealPlan: "All Inclusive", BreakFast: true, Lunch: true, Dinner: true, AI: true}

	alloc := Allocate(2, 2, plan, testPrices)
	assert.InDelta(t, 180, alloc.AllInclusive, 1e-9)
	assert.InDelta(t, 180, alloc.Total, 1e-9)
	assert.Zero(t, alloc.Breakfast)
	assert.Zero(t, alloc.Lunch)
	assert.Zero(t, alloc.Dinner)
}

func TestResolvePlanShortCodeBeforeName(t *testing.T) {
	plans := []MealPlanRule{
		{MealPlan: "BB", ShortCode: "XX"},
		{MealPlan: "Bed & Breakfast", ShortCode: "BB"},
	}

	// "BB" matches the second plan's short code before the first plan's name.
	got := ResolvePlan(plans, "bb")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Bed & Breakfast", got.MealPlan)
	}
}

func TestResolvePlanFallsBackToName(t *testing.T) {
	plans := []MealPlanRule{
		{MealPlan: "Full Board", ShortCode: "FB"},
	}

	got := ResolvePlan(plans, "full board")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Full Board", got.MealPlan)
	}

	assert.Nil(t, ResolvePlan(plans, "unknown"))
	assert.Nil(t, ResolvePlan(plans, ""))
}
