package domain

import "errors"

var (
	ErrInvalidCode      = errors.New("invalid_hotel_code")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidMealPrice = errors.New("invalid_meal_price")
	ErrNotFound         = errors.New("not_found")
	ErrCodeTaken        = errors.New("hotel_code_taken")
)
