package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
)

type nightAuditRequest struct {
	BusinessDate string `json:"business_date"`
	Grouping     string `json:"grouping"`
}

func (s *Server) PreviewNightAudit(c *gin.Context) {
	req, ok := bindNightAuditRequest(c)
	if !ok {
		return
	}

	resp, err := s.nightAuditSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RunNightAudit(c *gin.Context) {
	req, ok := bindNightAuditRequest(c)
	if !ok {
		return
	}

	resp, err := s.nightAuditSvc.Run(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func bindNightAuditRequest(c *gin.Context) (nightauditdomain.RunRequest, bool) {
	var req nightAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return nightauditdomain.RunRequest{}, false
	}

	businessDate := strings.TrimSpace(req.BusinessDate)
	if businessDate == "" {
		AbortWithError(c, newValidationError("business_date", "invalid_business_date", "business_date is required"))
		return nightauditdomain.RunRequest{}, false
	}

	return nightauditdomain.RunRequest{
		BusinessDate: businessDate,
		Grouping:     strings.TrimSpace(req.Grouping),
	}, true
}
