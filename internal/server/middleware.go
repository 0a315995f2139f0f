package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/folio/internal/hotelcontext"
)

const HeaderHotel = "X-Hotel-Id"

// HotelScope resolves the active hotel from the route or the X-Hotel-Id
// header and injects it into the request context. Every property-scoped
// route sits behind it.
func (s *Server) HotelScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Param("hotel_id"))
		if raw == "" {
			raw = strings.TrimSpace(c.GetHeader(HeaderHotel))
		}
		if raw == "" {
			AbortWithError(c, newValidationError("hotel_id", "invalid_hotel", "hotel_id is required"))
			return
		}

		hotelID, err := snowflake.ParseString(raw)
		if err != nil || hotelID == 0 {
			AbortWithError(c, newValidationError("hotel_id", "invalid_hotel", "invalid hotel_id"))
			return
		}

		ctx := hotelcontext.WithHotelID(c.Request.Context(), int64(hotelID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
