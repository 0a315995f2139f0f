package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/folio/internal/hotelcontext"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	ratecheckrepo "github.com/smallbiznis/folio/internal/ratecheck/repository"
)

func setupService(t *testing.T) (ratecheckdomain.Service, context.Context) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ratecheckdomain.RateCheckRow{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(serviceParams{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  ratecheckrepo.NewRepository(db),
	})

	ctx := hotelcontext.WithHotelID(context.Background(), 42)
	return svc, ctx
}

func TestIngestAndListByDate(t *testing.T) {
	svc, ctx := setupService(t)

	resp, err := svc.Ingest(ctx, ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{
			{
				ReservationID:       "1",
				ReservationDetailID: "9001",
				RateDate:            "2026-03-15",
				MealPlan:            "BB",
				RoomType:            "Deluxe",
				RoomNo:              "101",
				GuestName:           "Smith",
				NetRate:             1221,
				Adult:               2,
			},
			{
				ReservationID:       "1",
				ReservationDetailID: "9002",
				RateDate:            "2026-03-15",
				RoomType:            "Suite",
				NetRate:             244.2,
				Adult:               1,
				IsFOC:               true,
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Ingested)

	rows, err := svc.ListByDate(ctx, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "9001", rows[0].ReservationDetailID)
	require.Equal(t, "BB", rows[0].MealPlan)
	require.True(t, rows[1].IsFOC)
}

func TestIngestReplacesExistingNight(t *testing.T) {
	svc, ctx := setupService(t)

	first := ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{
			{
				ReservationDetailID: "9001",
				RateDate:            "2026-03-15",
				RoomType:            "Deluxe",
				NetRate:             1000,
				Adult:               2,
			},
		},
	}
	_, err := svc.Ingest(ctx, first)
	require.NoError(t, err)

	// A rate correction re-sends the same reservation night.
	corrected := first
	corrected.Rows[0].NetRate = 1221
	_, err = svc.Ingest(ctx, corrected)
	require.NoError(t, err)

	rows, err := svc.ListByDate(ctx, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 1221.0, rows[0].NetRate)
}

func TestIngestValidation(t *testing.T) {
	svc, ctx := setupService(t)

	_, err := svc.Ingest(context.Background(), ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{{ReservationDetailID: "9001", RateDate: "2026-03-15", RoomType: "Deluxe"}},
	})
	require.ErrorIs(t, err, ratecheckdomain.ErrInvalidHotel)

	_, err = svc.Ingest(ctx, ratecheckdomain.IngestRequest{})
	require.ErrorIs(t, err, ratecheckdomain.ErrEmptyBatch)

	_, err = svc.Ingest(ctx, ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{{ReservationDetailID: "9001", RateDate: "not-a-date", RoomType: "Deluxe"}},
	})
	require.ErrorIs(t, err, ratecheckdomain.ErrInvalidRateDate)

	_, err = svc.Ingest(ctx, ratecheckdomain.IngestRequest{
		Rows: []ratecheckdomain.IngestRow{{ReservationDetailID: "9001", RateDate: "2026-03-15", RoomType: ""}},
	})
	require.ErrorIs(t, err, ratecheckdomain.ErrInvalidRoomType)
}
