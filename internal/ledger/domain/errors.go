package domain

import "errors"

var (
	ErrInvalidHotel         = errors.New("invalid_hotel")
	ErrInvalidAccount       = errors.New("invalid_account")
	ErrInvalidAccountCode   = errors.New("invalid_account_code")
	ErrInvalidAccountType   = errors.New("invalid_account_type")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidCurrency      = errors.New("invalid_currency")
	ErrInvalidTranDate      = errors.New("invalid_tran_date")
	ErrInvalidSourceType    = errors.New("invalid_source_type")
	ErrInvalidChecksum      = errors.New("invalid_checksum")
	ErrInvalidLineAmount    = errors.New("invalid_line_amount")
	ErrInvalidLineDirection = errors.New("invalid_line_direction")
	ErrInvalidEntryLines    = errors.New("invalid_entry_lines")
	ErrEntryNotBalanced     = errors.New("entry_not_balanced")
	ErrMissingAccount       = errors.New("missing_account")
	ErrAccountCodeTaken     = errors.New("account_code_taken")
)
