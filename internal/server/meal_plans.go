package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
)

type createMealPlanRequest struct {
	MealPlan  string `json:"meal_plan"`
	ShortCode string `json:"short_code"`
	BreakFast bool   `json:"break_fast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
	AI        bool   `json:"ai"`
}

type updateMealPlanRequest struct {
	MealPlan  *string `json:"meal_plan,omitempty"`
	ShortCode *string `json:"short_code,omitempty"`
	BreakFast *bool   `json:"break_fast,omitempty"`
	Lunch     *bool   `json:"lunch,omitempty"`
	Dinner    *bool   `json:"dinner,omitempty"`
	AI        *bool   `json:"ai,omitempty"`
}

func (s *Server) CreateMealPlan(c *gin.Context) {
	var req createMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.mealPlanSvc.Create(c.Request.Context(), mealplandomain.CreateRequest{
		MealPlan:  strings.TrimSpace(req.MealPlan),
		ShortCode: strings.TrimSpace(req.ShortCode),
		BreakFast: req.BreakFast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		AI:        req.AI,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "meal_plan.create", "meal_plan", resp.ID, map[string]any{
		"meal_plan":  resp.MealPlan,
		"short_code": resp.ShortCode,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMealPlans(c *gin.Context) {
	var query struct {
		MealPlan  string `form:"meal_plan"`
		ShortCode string `form:"short_code"`
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

	resp, err := s.mealPlanSvc.List(c.Request.Context(), mealplandomain.ListRequest{
		MealPlan:  strings.TrimSpace(query.MealPlan),
		ShortCode: strings.TrimSpace(query.ShortCode),
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

func (s *Server) UpdateMealPlan(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.mealPlanSvc.Update(c.Request.Context(), mealplandomain.UpdateRequest{
		ID:        id,
		MealPlan:  trimOptional(req.MealPlan),
		ShortCode: trimOptional(req.ShortCode),
		BreakFast: req.BreakFast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
		AI:        req.AI,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "meal_plan.update", "meal_plan", resp.ID, map[string]any{
		"meal_plan": resp.MealPlan,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableMealPlan(c *gin.Context) {
	resp, err := s.mealPlanSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "meal_plan.disable", "meal_plan", resp.ID, map[string]any{
		"meal_plan": resp.MealPlan,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
