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
	TaxName   string
	TaxCode   string
	IsEnabled *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	TaxName     string  `json:"tax_name"`
	Percentage  float64 `json:"percentage"`
	CalcBasedOn string  `json:"calc_based_on"`
	AccountID   *string `json:"account_id"`
	TaxCode     *string `json:"tax_code"`
	IsEnabled   *bool   `json:"is_enabled"`
}

type UpdateRequest struct {
	ID          string   `json:"id"`
	TaxName     *string  `json:"tax_name,omitempty"`
	Percentage  *float64 `json:"percentage,omitempty"`
	CalcBasedOn *string  `json:"calc_based_on,omitempty"`
	AccountID   *string  `json:"account_id,omitempty"`
	TaxCode     *string  `json:"tax_code,omitempty"`
}

type Response struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotel_id"`
	TaxName     string    `json:"tax_name"`
	Percentage  float64   `json:"percentage"`
	CalcBasedOn string    `json:"calc_based_on"`
	AccountID   *string   `json:"account_id,omitempty"`
	TaxCode     *string   `json:"tax_code,omitempty"`
	IsEnabled   bool      `json:"is_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
