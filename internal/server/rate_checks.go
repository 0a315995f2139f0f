package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
)

// IngestRateChecks replaces the submitted reservation-nights in one
// batch; re-sending a night after a rate correction overwrites it.
func (s *Server) IngestRateChecks(c *gin.Context) {
	var req ratecheckdomain.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateCheckSvc.Ingest(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRateChecks(c *gin.Context) {
	var query struct {
		RateDate string `form:"rate_date"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if strings.TrimSpace(query.RateDate) == "" {
		AbortWithError(c, newValidationError("rate_date", "invalid_rate_date", "rate_date is required"))
		return
	}
	rateDate, err := parseDateOnly(query.RateDate)
	if err != nil {
		AbortWithError(c, newValidationError("rate_date", "invalid_rate_date", "invalid rate_date"))
		return
	}

	resp, err := s.rateCheckSvc.ListByDate(c.Request.Context(), rateDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
