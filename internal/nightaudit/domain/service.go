package domain

import (
	"context"
	"time"
)

type Service interface {
	// Preview builds the journal payloads for a business date without
	// posting anything.
	Preview(ctx context.Context, req RunRequest) (*RunResponse, error)
	// Run builds and posts the payloads to the ledger idempotently.
	Run(ctx context.Context, req RunRequest) (*RunResponse, error)
}

type RunRequest struct {
	BusinessDate string `json:"business_date"`
	Grouping     string `json:"grouping"`
}

type RunResponse struct {
	HotelID      string    `json:"hotel_id"`
	BusinessDate string    `json:"business_date"`
	Grouping     Grouping  `json:"grouping"`
	Rows         int       `json:"rows"`
	Posted       int       `json:"posted"`
	Skipped      int       `json:"skipped"`
	GrossTotal   float64   `json:"gross_total"`
	Payloads     []Payload `json:"payloads,omitempty"`
	RanAt        time.Time `json:"ran_at"`
}
