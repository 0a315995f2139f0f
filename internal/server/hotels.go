package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
)

type createHotelRequest struct {
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	CurrencyCode      string   `json:"currency_code"`
	Timezone          string   `json:"timezone"`
	BreakfastPrice    *float64 `json:"breakfast_price"`
	LunchPrice        *float64 `json:"lunch_price"`
	DinnerPrice       *float64 `json:"dinner_price"`
	AllInclusivePrice *float64 `json:"all_inclusive_price"`
}

type updateHotelRequest struct {
	Name              *string  `json:"name,omitempty"`
	CurrencyCode      *string  `json:"currency_code,omitempty"`
	Timezone          *string  `json:"timezone,omitempty"`
	BreakfastPrice    *float64 `json:"breakfast_price,omitempty"`
	LunchPrice        *float64 `json:"lunch_price,omitempty"`
	DinnerPrice       *float64 `json:"dinner_price,omitempty"`
	AllInclusivePrice *float64 `json:"all_inclusive_price,omitempty"`
}

func (s *Server) CreateHotel(c *gin.Context) {
	var req createHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.Create(c.Request.Context(), hoteldomain.CreateRequest{
		Code:              strings.TrimSpace(req.Code),
		Name:              strings.TrimSpace(req.Name),
		CurrencyCode:      strings.TrimSpace(req.CurrencyCode),
		Timezone:          strings.TrimSpace(req.Timezone),
		BreakfastPrice:    req.BreakfastPrice,
		LunchPrice:        req.LunchPrice,
		DinnerPrice:       req.DinnerPrice,
		AllInclusivePrice: req.AllInclusivePrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.ID, "hotel.create", "hotel", resp.ID, map[string]any{
		"code":     resp.Code,
		"name":     resp.Name,
		"timezone": resp.Timezone,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListHotels(c *gin.Context) {
	var query struct {
		Code      string `form:"code"`
		Name      string `form:"name"`
		IsEnabled string `form:"is_enabled"`
		SortBy    string `form:"sort_by"`
		OrderBy   string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	isEnabled, err := parseOptionalBool(query.IsEnabled)
	if err != nil {
		AbortWithError(c, newValidationError("is_enabled", "invalid_is_enabled", "invalid is_enabled"))
		return
	}

	resp, err := s.hotelSvc.List(c.Request.Context(), hoteldomain.ListRequest{
		Code:      strings.TrimSpace(query.Code),
		Name:      strings.TrimSpace(query.Name),
		IsEnabled: isEnabled,
		SortBy:    strings.TrimSpace(query.SortBy),
		OrderBy:   strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetHotelByID(c *gin.Context) {
	resp, err := s.hotelSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("hotel_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateHotel(c *gin.Context) {
	id := strings.TrimSpace(c.Param("hotel_id"))

	var req updateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.Update(c.Request.Context(), hoteldomain.UpdateRequest{
		ID:                id,
		Name:              trimOptional(req.Name),
		CurrencyCode:      trimOptional(req.CurrencyCode),
		Timezone:          trimOptional(req.Timezone),
		BreakfastPrice:    req.BreakfastPrice,
		LunchPrice:        req.LunchPrice,
		DinnerPrice:       req.DinnerPrice,
		AllInclusivePrice: req.AllInclusivePrice,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.ID, "hotel.update", "hotel", resp.ID, map[string]any{
		"code": resp.Code,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableHotel(c *gin.Context) {
	resp, err := s.hotelSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("hotel_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.ID, "hotel.disable", "hotel", resp.ID, map[string]any{
		"code": resp.Code,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) writeAuditLog(c *gin.Context, hotelID, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}
	parsed, err := snowflake.ParseString(strings.TrimSpace(hotelID))
	if err != nil {
		return
	}
	_ = s.auditSvc.AuditLog(c.Request.Context(), parsed, action, targetType, &targetID, metadata)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
