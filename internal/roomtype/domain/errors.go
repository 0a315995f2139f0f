package domain

import "errors"

var (
	ErrInvalidHotel = errors.New("invalid_hotel")
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrNameTaken    = errors.New("room_type_name_taken")
	ErrNotFound     = errors.New("not_found")
)
