// Package context carries request-scoped correlation identifiers.
package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	hotelIDKey   contextKey = "hotel_id"
)

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithHotelID stores the hotel scope on the context.
func WithHotelID(ctx context.Context, hotelID string) context.Context {
	if hotelID == "" {
		return ctx
	}
	return context.WithValue(ctx, hotelIDKey, hotelID)
}

// HotelIDFromContext returns the hotel scope or "".
func HotelIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(hotelIDKey).(string); ok {
		return v
	}
	return ""
}
