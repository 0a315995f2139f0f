package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
)

type createRoomTypeRequest struct {
	Name        string  `json:"name"`
	GLAccountID *string `json:"gl_account_id"`
}

type updateRoomTypeRequest struct {
	Name        *string `json:"name,omitempty"`
	GLAccountID *string `json:"gl_account_id,omitempty"`
}

func (s *Server) CreateRoomType(c *gin.Context) {
	var req createRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.roomTypeSvc.Create(c.Request.Context(), roomtypedomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		GLAccountID: trimOptional(req.GLAccountID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "room_type.create", "room_type", resp.ID, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRoomTypes(c *gin.Context) {
	var query struct {
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

	resp, err := s.roomTypeSvc.List(c.Request.Context(), roomtypedomain.ListRequest{
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

func (s *Server) UpdateRoomType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.roomTypeSvc.Update(c.Request.Context(), roomtypedomain.UpdateRequest{
		ID:          id,
		Name:        trimOptional(req.Name),
		GLAccountID: trimOptional(req.GLAccountID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "room_type.update", "room_type", resp.ID, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableRoomType(c *gin.Context) {
	resp, err := s.roomTypeSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "room_type.disable", "room_type", resp.ID, map[string]any{
		"name": resp.Name,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
