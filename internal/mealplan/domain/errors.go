package domain

import "errors"

var (
	ErrInvalidHotel    = errors.New("invalid_hotel")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidMealPlan = errors.New("invalid_meal_plan")
	ErrMealPlanTaken   = errors.New("meal_plan_taken")
	ErrNotFound        = errors.New("not_found")
)
