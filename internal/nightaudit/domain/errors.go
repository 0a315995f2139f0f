package domain

import "errors"

var (
	ErrInvalidHotel        = errors.New("invalid_hotel")
	ErrInvalidBusinessDate = errors.New("invalid_business_date")
	ErrHotelNotFound       = errors.New("hotel_not_found")
	ErrNoRateCheckRows     = errors.New("no_rate_check_rows")
	ErrUnresolvedTaxRules  = errors.New("unresolved_tax_rules")
)
