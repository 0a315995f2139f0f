package domain

import (
	"context"
	"time"
)

type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*IngestResponse, error)
	ListByDate(ctx context.Context, rateDate time.Time) ([]Response, error)
}

type IngestRequest struct {
	Rows []IngestRow `json:"rows"`
}

type IngestRow struct {
	ReservationID       string  `json:"reservation_id"`
	ReservationDetailID string  `json:"reservation_detail_id"`
	RateDate            string  `json:"rate_date"`
	MealPlan            string  `json:"meal_plan"`
	RoomType            string  `json:"room_type"`
	RoomNo              string  `json:"room_no"`
	GuestName           string  `json:"guest_name"`
	NetRate             float64 `json:"net_rate"`
	Adult               int     `json:"adult"`
	Child               int     `json:"child"`
	IsFOC               bool    `json:"is_foc"`
}

type IngestResponse struct {
	Ingested int `json:"ingested"`
}

type Response struct {
	ID                  string    `json:"id"`
	HotelID             string    `json:"hotel_id"`
	ReservationID       string    `json:"reservation_id"`
	ReservationDetailID string    `json:"reservation_detail_id"`
	RateDate            string    `json:"rate_date"`
	MealPlan            string    `json:"meal_plan"`
	RoomType            string    `json:"room_type"`
	RoomNo              string    `json:"room_no"`
	GuestName           string    `json:"guest_name"`
	NetRate             float64   `json:"net_rate"`
	Adult               int       `json:"adult"`
	Child               int       `json:"child"`
	IsFOC               bool      `json:"is_foc"`
	CreatedAt           time.Time `json:"created_at"`
}
