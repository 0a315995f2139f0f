package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/folio/internal/hotelcontext"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
)

type fakeNightAuditService struct {
	lastHotelID snowflake.ID
	lastReq     nightauditdomain.RunRequest
	runCalls    int
	err         error
}

func (f *fakeNightAuditService) Preview(ctx context.Context, req nightauditdomain.RunRequest) (*nightauditdomain.RunResponse, error) {
	f.lastHotelID, _ = hotelcontext.HotelIDFromContext(ctx)
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &nightauditdomain.RunResponse{
		BusinessDate: req.BusinessDate,
		Rows:         2,
	}, nil
}

func (f *fakeNightAuditService) Run(ctx context.Context, req nightauditdomain.RunRequest) (*nightauditdomain.RunResponse, error) {
	f.lastHotelID, _ = hotelcontext.HotelIDFromContext(ctx)
	f.lastReq = req
	f.runCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &nightauditdomain.RunResponse{
		BusinessDate: req.BusinessDate,
		Rows:         2,
		Posted:       1,
	}, nil
}

type fakeRateCheckService struct {
	lastHotelID snowflake.ID
	lastRows    int
}

func (f *fakeRateCheckService) Ingest(ctx context.Context, req ratecheckdomain.IngestRequest) (*ratecheckdomain.IngestResponse, error) {
	f.lastHotelID, _ = hotelcontext.HotelIDFromContext(ctx)
	f.lastRows = len(req.Rows)
	return &ratecheckdomain.IngestResponse{Ingested: len(req.Rows)}, nil
}

func (f *fakeRateCheckService) ListByDate(ctx context.Context, rateDate time.Time) ([]ratecheckdomain.Response, error) {
	return nil, nil
}

func newTestServer(t *testing.T, nightAudit nightauditdomain.Service, rateChecks ratecheckdomain.Service) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:           engine,
		NightAuditSvc: nightAudit,
		RateCheckSvc:  rateChecks,
	})
}

func TestRunNightAuditScopesHotel(t *testing.T) {
	fake := &fakeNightAuditService{}
	srv := newTestServer(t, fake, nil)

	body, _ := json.Marshal(map[string]string{
		"business_date": "2026-03-15",
		"grouping":      "reservation_detail",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/hotels/1001/night_audit/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, fake.runCalls)
	require.Equal(t, snowflake.ID(1001), fake.lastHotelID)
	require.Equal(t, "2026-03-15", fake.lastReq.BusinessDate)
	require.Equal(t, "reservation_detail", fake.lastReq.Grouping)
}

func TestRunNightAuditRequiresBusinessDate(t *testing.T) {
	fake := &fakeNightAuditService{}
	srv := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/hotels/1001/night_audit/run", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, fake.runCalls)
}

func TestHotelScopeRejectsMalformedID(t *testing.T) {
	fake := &fakeNightAuditService{}
	srv := newTestServer(t, fake, nil)

	body := []byte(`{"business_date":"2026-03-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/hotels/not-an-id/night_audit/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, fake.runCalls)
}

func TestRunNightAuditMapsRefusalToUnprocessable(t *testing.T) {
	fake := &fakeNightAuditService{err: nightauditdomain.ErrUnresolvedTaxRules}
	srv := newTestServer(t, fake, nil)

	body := []byte(`{"business_date":"2026-03-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/hotels/1001/night_audit/run", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unprocessable", resp.Error.Type)
}

func TestIngestRateChecksScopesHotel(t *testing.T) {
	fake := &fakeRateCheckService{}
	srv := newTestServer(t, &fakeNightAuditService{}, fake)

	body, _ := json.Marshal(ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{
			{
				ReservationID:       "1",
				ReservationDetailID: "9001",
				RateDate:            "2026-03-15",
				RoomType:            "Deluxe",
				NetRate:             1221,
				Adult:               2,
			},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/hotels/1001/rate_checks", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, snowflake.ID(1001), fake.lastHotelID)
	require.Equal(t, 1, fake.lastRows)
}
