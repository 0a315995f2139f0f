package domain

import "errors"

var (
	ErrInvalidHotel             = errors.New("invalid_hotel")
	ErrInvalidReservationDetail = errors.New("invalid_reservation_detail")
	ErrInvalidRateDate          = errors.New("invalid_rate_date")
	ErrInvalidNetRate           = errors.New("invalid_net_rate")
	ErrInvalidOccupancy         = errors.New("invalid_occupancy")
	ErrInvalidRoomType          = errors.New("invalid_room_type")
	ErrEmptyBatch               = errors.New("empty_batch")
)
