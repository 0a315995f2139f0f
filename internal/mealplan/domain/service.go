package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	MealPlan  string
	ShortCode string
	IsEnabled *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	MealPlan  string `json:"meal_plan"`
	ShortCode string `json:"short_code"`
	BreakFast bool   `json:"break_fast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
	AI        bool   `json:"ai"`
}

type UpdateRequest struct {
	ID        string  `json:"id"`
	MealPlan  *string `json:"meal_plan,omitempty"`
	ShortCode *string `json:"short_code,omitempty"`
	BreakFast *bool   `json:"break_fast,omitempty"`
	Lunch     *bool   `json:"lunch,omitempty"`
	Dinner    *bool   `json:"dinner,omitempty"`
	AI        *bool   `json:"ai,omitempty"`
}

type Response struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	MealPlan  string    `json:"meal_plan"`
	ShortCode string    `json:"short_code"`
	BreakFast bool      `json:"break_fast"`
	Lunch     bool      `json:"lunch"`
	Dinner    bool      `json:"dinner"`
	AI        bool      `json:"ai"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
