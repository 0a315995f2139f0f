package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Code      string
	Name      string
	IsEnabled *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	CurrencyCode      string   `json:"currency_code"`
	Timezone          string   `json:"timezone"`
	BreakfastPrice    *float64 `json:"breakfast_price"`
	LunchPrice        *float64 `json:"lunch_price"`
	DinnerPrice       *float64 `json:"dinner_price"`
	AllInclusivePrice *float64 `json:"all_inclusive_price"`
}

type UpdateRequest struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name,omitempty"`
	CurrencyCode      *string  `json:"currency_code,omitempty"`
	Timezone          *string  `json:"timezone,omitempty"`
	BreakfastPrice    *float64 `json:"breakfast_price,omitempty"`
	LunchPrice        *float64 `json:"lunch_price,omitempty"`
	DinnerPrice       *float64 `json:"dinner_price,omitempty"`
	AllInclusivePrice *float64 `json:"all_inclusive_price,omitempty"`
}

type Response struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	CurrencyCode      string    `json:"currency_code"`
	Timezone          string    `json:"timezone"`
	BreakfastPrice    *float64  `json:"breakfast_price,omitempty"`
	LunchPrice        *float64  `json:"lunch_price,omitempty"`
	DinnerPrice       *float64  `json:"dinner_price,omitempty"`
	AllInclusivePrice *float64  `json:"all_inclusive_price,omitempty"`
	IsEnabled         bool      `json:"is_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
