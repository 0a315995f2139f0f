package domain

import "errors"

var (
	ErrInvalidHotel       = errors.New("invalid_hotel")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidTaxName     = errors.New("invalid_tax_name")
	ErrInvalidPercentage  = errors.New("invalid_percentage")
	ErrInvalidCalcBasedOn = errors.New("invalid_calc_based_on")
	ErrTaxNameTaken       = errors.New("tax_name_taken")
	ErrNotFound           = errors.New("not_found")
)
