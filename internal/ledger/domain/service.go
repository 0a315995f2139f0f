package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error)
	ListAccounts(ctx context.Context, req ListAccountsRequest) ([]AccountResponse, error)

	// ResolveAccounts maps well-known account codes to the hotel's chart of
	// accounts; every requested code must exist.
	ResolveAccounts(ctx context.Context, hotelID snowflake.ID, codes []GLAccountCode) (map[GLAccountCode]snowflake.ID, error)

	// CreateTransaction posts one balanced journal idempotently: a replay
	// with the same checksum is a no-op. Returns whether a row was inserted.
	CreateTransaction(ctx context.Context, tran *GLTransaction, lines []GLTransactionLine) (bool, error)
}

type CreateAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ListAccountsRequest struct {
	Type    string
	SortBy  string
	OrderBy string
}

type AccountResponse struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotel_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
