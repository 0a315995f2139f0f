package hotelcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// HotelContextKey is the request context key for the active hotel ID.
type HotelContextKey struct{}

// WithHotelID stores the hotel ID in the context.
func WithHotelID(ctx context.Context, hotelID int64) context.Context {
	return context.WithValue(ctx, HotelContextKey{}, hotelID)
}

// HotelIDFromContext returns the hotel ID from context, if set.
func HotelIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(HotelContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
