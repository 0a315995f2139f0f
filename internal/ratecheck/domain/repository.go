package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// ReplaceBatch deletes any existing rows for the batch's
	// (reservation_detail_id, rate_date) keys before inserting, so a
	// re-ingested night replaces rather than duplicates.
	ReplaceBatch(ctx context.Context, rows []RateCheckRow) error
	ListByDate(ctx context.Context, hotelID snowflake.ID, rateDate time.Time) ([]RateCheckRow, error)
}
