package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
)

type createTaxRuleRequest struct {
	TaxName     string  `json:"tax_name"`
	Percentage  float64 `json:"percentage"`
	CalcBasedOn string  `json:"calc_based_on"`
	AccountID   *string `json:"account_id"`
	TaxCode     *string `json:"tax_code"`
	IsEnabled   *bool   `json:"is_enabled"`
}

type updateTaxRuleRequest struct {
	TaxName     *string  `json:"tax_name,omitempty"`
	Percentage  *float64 `json:"percentage,omitempty"`
	CalcBasedOn *string  `json:"calc_based_on,omitempty"`
	AccountID   *string  `json:"account_id,omitempty"`
	TaxCode     *string  `json:"tax_code,omitempty"`
}

func (s *Server) CreateTaxRule(c *gin.Context) {
	var req createTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxRuleSvc.Create(c.Request.Context(), taxruledomain.CreateRequest{
		TaxName:     strings.TrimSpace(req.TaxName),
		Percentage:  req.Percentage,
		CalcBasedOn: strings.TrimSpace(req.CalcBasedOn),
		AccountID:   trimOptional(req.AccountID),
		TaxCode:     trimOptional(req.TaxCode),
		IsEnabled:   req.IsEnabled,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "tax_rule.create", "tax_rule", resp.ID, map[string]any{
		"tax_name":      resp.TaxName,
		"percentage":    resp.Percentage,
		"calc_based_on": resp.CalcBasedOn,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxRules(c *gin.Context) {
	var query struct {
		TaxName   string `form:"tax_name"`
		TaxCode   string `form:"tax_code"`
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

	resp, err := s.taxRuleSvc.List(c.Request.Context(), taxruledomain.ListRequest{
		TaxName:   strings.TrimSpace(query.TaxName),
		TaxCode:   strings.TrimSpace(query.TaxCode),
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

func (s *Server) UpdateTaxRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxRuleSvc.Update(c.Request.Context(), taxruledomain.UpdateRequest{
		ID:          id,
		TaxName:     trimOptional(req.TaxName),
		Percentage:  req.Percentage,
		CalcBasedOn: trimOptional(req.CalcBasedOn),
		AccountID:   trimOptional(req.AccountID),
		TaxCode:     trimOptional(req.TaxCode),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "tax_rule.update", "tax_rule", resp.ID, map[string]any{
		"tax_name":      resp.TaxName,
		"percentage":    resp.Percentage,
		"calc_based_on": resp.CalcBasedOn,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableTaxRule(c *gin.Context) {
	resp, err := s.taxRuleSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "tax_rule.disable", "tax_rule", resp.ID, map[string]any{
		"tax_name": resp.TaxName,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
