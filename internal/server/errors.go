package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isUnprocessableError(err):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "unprocessable",
			Message: err.Error(),
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, hoteldomain.ErrInvalidCode),
		errors.Is(err, hoteldomain.ErrInvalidName),
		errors.Is(err, hoteldomain.ErrInvalidID),
		errors.Is(err, hoteldomain.ErrInvalidMealPrice):
		return true
	case errors.Is(err, taxruledomain.ErrInvalidHotel),
		errors.Is(err, taxruledomain.ErrInvalidID),
		errors.Is(err, taxruledomain.ErrInvalidTaxName),
		errors.Is(err, taxruledomain.ErrInvalidPercentage),
		errors.Is(err, taxruledomain.ErrInvalidCalcBasedOn):
		return true
	case errors.Is(err, roomtypedomain.ErrInvalidID),
		errors.Is(err, roomtypedomain.ErrInvalidName):
		return true
	case errors.Is(err, mealplandomain.ErrInvalidID),
		errors.Is(err, mealplandomain.ErrInvalidMealPlan):
		return true
	case errors.Is(err, ratecheckdomain.ErrInvalidReservationDetail),
		errors.Is(err, ratecheckdomain.ErrInvalidRateDate),
		errors.Is(err, ratecheckdomain.ErrInvalidNetRate),
		errors.Is(err, ratecheckdomain.ErrInvalidOccupancy),
		errors.Is(err, ratecheckdomain.ErrInvalidRoomType),
		errors.Is(err, ratecheckdomain.ErrEmptyBatch):
		return true
	case errors.Is(err, ledgerdomain.ErrInvalidAccountCode),
		errors.Is(err, ledgerdomain.ErrInvalidAccountType),
		errors.Is(err, ledgerdomain.ErrInvalidName):
		return true
	case errors.Is(err, nightauditdomain.ErrInvalidBusinessDate):
		return true
	case errors.Is(err, auditdomain.ErrInvalidPageToken),
		errors.Is(err, auditdomain.ErrInvalidTimeRange),
		errors.Is(err, auditdomain.ErrInvalidAction):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, hoteldomain.ErrCodeTaken),
		errors.Is(err, taxruledomain.ErrTaxNameTaken),
		errors.Is(err, roomtypedomain.ErrNameTaken),
		errors.Is(err, mealplandomain.ErrMealPlanTaken),
		errors.Is(err, ledgerdomain.ErrAccountCodeTaken):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, hoteldomain.ErrNotFound),
		errors.Is(err, taxruledomain.ErrNotFound),
		errors.Is(err, roomtypedomain.ErrNotFound),
		errors.Is(err, mealplandomain.ErrNotFound),
		errors.Is(err, nightauditdomain.ErrHotelNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// Audit failures a caller can act on: fix the tax setup or ingest the
// night's rates, then retry.
func isUnprocessableError(err error) bool {
	switch {
	case errors.Is(err, nightauditdomain.ErrUnresolvedTaxRules),
		errors.Is(err, nightauditdomain.ErrNoRateCheckRows),
		errors.Is(err, ledgerdomain.ErrMissingAccount),
		errors.Is(err, ledgerdomain.ErrEntryNotBalanced):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status >= http.StatusBadRequest:
		return "client", payload.Type
	default:
		return "", payload.Type
	}
}
