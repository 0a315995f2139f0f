package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)

	// GLAccountMap returns lowercased room type name -> revenue account id
	// for the builder's account resolution chain.
	GLAccountMap(ctx context.Context, hotelID snowflake.ID) (map[string]snowflake.ID, error)
}

type ListRequest struct {
	Name      string
	IsEnabled *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	Name        string  `json:"name"`
	GLAccountID *string `json:"gl_account_id"`
}

type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	GLAccountID *string `json:"gl_account_id,omitempty"`
}

type Response struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotel_id"`
	Name        string    `json:"name"`
	GLAccountID *string   `json:"gl_account_id,omitempty"`
	IsEnabled   bool      `json:"is_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
