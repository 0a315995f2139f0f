package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/folio/internal/clock"
	"github.com/smallbiznis/folio/internal/config"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	hotelrepo "github.com/smallbiznis/folio/internal/hotel/repository"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
)

type fakeNightAuditService struct {
	runs []recordedRun
	err  error
}

type recordedRun struct {
	hotelID      snowflake.ID
	businessDate string
}

func (f *fakeNightAuditService) Preview(ctx context.Context, req nightauditdomain.RunRequest) (*nightauditdomain.RunResponse, error) {
	return nil, nil
}

func (f *fakeNightAuditService) Run(ctx context.Context, req nightauditdomain.RunRequest) (*nightauditdomain.RunResponse, error) {
	hotelID, _ := hotelcontext.HotelIDFromContext(ctx)
	f.runs = append(f.runs, recordedRun{hotelID: hotelID, businessDate: req.BusinessDate})
	if f.err != nil {
		return nil, f.err
	}
	return &nightauditdomain.RunResponse{
		BusinessDate: req.BusinessDate,
		Rows:         3,
		Posted:       1,
	}, nil
}

func setupScheduler(t *testing.T, now time.Time, svc nightauditdomain.Service) (*Scheduler, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&hoteldomain.Hotel{},
		&ledgerdomain.GLTransaction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sched, err := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		Clock:         clock.NewFakeClock(now),
		Holder:        config.NewStaticNightAuditConfigHolder(config.DefaultNightAuditConfig()),
		Hotels:        hotelrepo.NewRepository(db),
		NightAuditSvc: svc,
	})
	require.NoError(t, err)
	return sched, db, node
}

func seedHotel(t *testing.T, db *gorm.DB, node *snowflake.Node, code, timezone string, enabled bool) snowflake.ID {
	t.Helper()
	hotel := &hoteldomain.Hotel{
		ID:           node.Generate(),
		Code:         code,
		Name:         code,
		CurrencyCode: "USD",
		Timezone:     timezone,
		IsEnabled:    enabled,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel.ID
}

func TestEligibleBusinessDate(t *testing.T) {
	// Past the 4am audit hour: last night is eligible.
	after := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-03-15", eligibleBusinessDate(after, 4).Format("2006-01-02"))

	// Before the audit hour last night is still open.
	before := time.Date(2026, 3, 16, 3, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-03-14", eligibleBusinessDate(before, 4).Format("2006-01-02"))

	// Midnight with audit hour 0 is immediately eligible.
	midnight := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-03-15", eligibleBusinessDate(midnight, 0).Format("2006-01-02"))
}

func TestRunOnceRunsEligibleHotels(t *testing.T) {
	fake := &fakeNightAuditService{}
	now := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	sched, db, node := setupScheduler(t, now, fake)

	eligible := seedHotel(t, db, node, "GRAND", "UTC", true)
	seedHotel(t, db, node, "CLOSED", "UTC", false)

	require.NoError(t, sched.RunOnce(context.Background()))

	require.Len(t, fake.runs, 1)
	require.Equal(t, eligible, fake.runs[0].hotelID)
	require.Equal(t, "2026-03-15", fake.runs[0].businessDate)
}

func TestRunOnceHonorsHotelTimezone(t *testing.T) {
	fake := &fakeNightAuditService{}
	// 05:00 UTC is 00:00 in New York: before the audit hour there.
	now := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	sched, db, node := setupScheduler(t, now, fake)

	seedHotel(t, db, node, "NYC", "America/New_York", true)

	require.NoError(t, sched.RunOnce(context.Background()))
	require.Len(t, fake.runs, 1)
	require.Equal(t, "2026-03-14", fake.runs[0].businessDate)
}

func TestRunOnceSkipsAlreadyPostedDates(t *testing.T) {
	fake := &fakeNightAuditService{}
	now := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	sched, db, node := setupScheduler(t, now, fake)

	hotelID := seedHotel(t, db, node, "GRAND", "UTC", true)
	require.NoError(t, db.Create(&ledgerdomain.GLTransaction{
		ID:           node.Generate(),
		HotelID:      hotelID,
		TranDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TranTypeID:   2,
		CurrencyCode: "USD",
		Checksum:     "seeded",
		SourceType:   "night_audit",
	}).Error)

	require.NoError(t, sched.RunOnce(context.Background()))
	require.Empty(t, fake.runs)
}

func TestRunOnceAggregatesHotelErrors(t *testing.T) {
	fake := &fakeNightAuditService{err: nightauditdomain.ErrUnresolvedTaxRules}
	now := time.Date(2026, 3, 16, 5, 0, 0, 0, time.UTC)
	sched, db, node := setupScheduler(t, now, fake)

	seedHotel(t, db, node, "GRAND", "UTC", true)
	seedHotel(t, db, node, "PLAZA", "UTC", true)

	err := sched.RunOnce(context.Background())
	require.ErrorIs(t, err, nightauditdomain.ErrUnresolvedTaxRules)
	// Both hotels are still attempted; one failure does not stop the sweep.
	require.Len(t, fake.runs, 2)
}
