package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
)

type createLedgerAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) CreateLedgerAccount(c *gin.Context) {
	var req createLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.CreateAccount(c.Request.Context(), ledgerdomain.CreateAccountRequest{
		Code: strings.TrimSpace(req.Code),
		Name: strings.TrimSpace(req.Name),
		Type: strings.TrimSpace(req.Type),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeAuditLog(c, resp.HotelID, "ledger.account_created", "gl_account", resp.ID, map[string]any{
		"code": resp.Code,
		"type": resp.Type,
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLedgerAccounts(c *gin.Context) {
	var query struct {
		Type    string `form:"type"`
		SortBy  string `form:"sort_by"`
		OrderBy string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.ListAccounts(c.Request.Context(), ledgerdomain.ListAccountsRequest{
		Type:    strings.TrimSpace(query.Type),
		SortBy:  strings.TrimSpace(query.SortBy),
		OrderBy: strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
