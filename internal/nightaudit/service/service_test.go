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

	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	auditrepo "github.com/smallbiznis/folio/internal/audit/repository"
	auditservice "github.com/smallbiznis/folio/internal/audit/service"
	"github.com/smallbiznis/folio/internal/clock"
	"github.com/smallbiznis/folio/internal/config"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	hotelrepo "github.com/smallbiznis/folio/internal/hotel/repository"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	ledgerservice "github.com/smallbiznis/folio/internal/ledger/service"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	mealplanrepo "github.com/smallbiznis/folio/internal/mealplan/repository"
	"github.com/smallbiznis/folio/internal/nightaudit/domain"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	ratecheckrepo "github.com/smallbiznis/folio/internal/ratecheck/repository"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	roomtyperepo "github.com/smallbiznis/folio/internal/roomtype/repository"
	roomtypeservice "github.com/smallbiznis/folio/internal/roomtype/service"
	"github.com/smallbiznis/folio/internal/taxengine"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
	taxrulerepo "github.com/smallbiznis/folio/internal/taxrule/repository"
)

const testBusinessDate = "2026-03-15"

type testEnv struct {
	db      *gorm.DB
	node    *snowflake.Node
	hotelID snowflake.ID
	svc     domain.Service
	ctx     context.Context

	taxRules taxruledomain.Repository
}

// setupEnv wires the audit pipeline over in-memory sqlite: a hotel with
// meal price overrides, a Service 10% / VAT 11% tax cascade, a mapped
// Deluxe room type, a BB meal plan, and the full chart of accounts.
func setupEnv(t *testing.T, seedAccounts bool) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&hoteldomain.Hotel{},
		&taxruledomain.TaxRule{},
		&roomtypedomain.RoomType{},
		&mealplandomain.MealPlanRule{},
		&ratecheckdomain.RateCheckRow{},
		&ledgerdomain.GLAccount{},
		&ledgerdomain.GLTransaction{},
		&ledgerdomain.GLTransactionLine{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	auditSvc := auditservice.NewService(auditservice.Params{
		Log:   log,
		GenID: node,
		Repo:  auditrepo.Provide(db),
	})
	ledgerSvc := ledgerservice.NewService(ledgerservice.Params{
		DB:       db,
		Log:      log,
		GenID:    node,
		AuditSvc: auditSvc,
	})
	roomTypeSvc := roomtypeservice.NewService(roomtypeservice.Params{
		Log:   log,
		GenID: node,
		Repo:  roomtyperepo.NewRepository(db),
	})

	env := &testEnv{
		db:       db,
		node:     node,
		hotelID:  node.Generate(),
		taxRules: taxrulerepo.NewRepository(db),
	}
	env.ctx = hotelcontext.WithHotelID(context.Background(), int64(env.hotelID))

	env.svc = NewService(Params{
		Log:        log,
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 16, 4, 0, 0, 0, time.UTC)),
		Holder:     config.NewStaticNightAuditConfigHolder(config.DefaultNightAuditConfig()),
		Hotels:     hotelrepo.NewRepository(db),
		TaxRules:   env.taxRules,
		RoomTypes:  roomTypeSvc,
		MealPlans:  mealplanrepo.NewRepository(db),
		RateChecks: ratecheckrepo.NewRepository(db),
		Ledger:     ledgerSvc,
		AuditSvc:   auditSvc,
	})

	price := func(v float64) *float64 { return &v }
	require.NoError(t, hotelrepo.NewRepository(db).Create(env.ctx, &hoteldomain.Hotel{
		ID:                env.hotelID,
		Code:              "GRAND",
		Name:              "Grand Folio",
		CurrencyCode:      "USD",
		Timezone:          "UTC",
		BreakfastPrice:    price(10),
		LunchPrice:        price(15),
		DinnerPrice:       price(20),
		AllInclusivePrice: price(60),
		IsEnabled:         true,
	}))

	require.NoError(t, env.taxRules.Create(env.ctx, &taxruledomain.TaxRule{
		ID: node.Generate(), HotelID: env.hotelID,
		TaxName: "Service", Percentage: 10, CalcBasedOn: "Base", IsEnabled: true,
	}))
	require.NoError(t, env.taxRules.Create(env.ctx, &taxruledomain.TaxRule{
		ID: node.Generate(), HotelID: env.hotelID,
		TaxName: "VAT", Percentage: 11, CalcBasedOn: "Base+Service", IsEnabled: true,
	}))

	if seedAccounts {
		deluxeAccount := env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeRoomRevenue, "Room Revenue", ledgerdomain.AccountTypeRevenue)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeGuestLedger, "Guest Ledger", ledgerdomain.AccountTypeAsset)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeBreakfastRevenue, "Breakfast Revenue", ledgerdomain.AccountTypeRevenue)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeLunchRevenue, "Lunch Revenue", ledgerdomain.AccountTypeRevenue)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeDinnerRevenue, "Dinner Revenue", ledgerdomain.AccountTypeRevenue)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeAllInclusiveRevenue, "All Inclusive Revenue", ledgerdomain.AccountTypeRevenue)
		env.createAccount(t, ledgerSvc, ledgerdomain.AccountCodeTaxPayable, "Tax Payable", ledgerdomain.AccountTypeLiability)

		require.NoError(t, roomtyperepo.NewRepository(db).Create(env.ctx, &roomtypedomain.RoomType{
			ID: node.Generate(), HotelID: env.hotelID,
			Name: "Deluxe", GLAccountID: &deluxeAccount, IsEnabled: true,
		}))
	}

	require.NoError(t, mealplanrepo.NewRepository(db).Create(env.ctx, &mealplandomain.MealPlanRule{
		ID: node.Generate(), HotelID: env.hotelID,
		MealPlan: "Bed and Breakfast", ShortCode: "BB", BreakFast: true, IsEnabled: true,
	}))

	businessDate, err := time.ParseInLocation("2006-01-02", testBusinessDate, time.UTC)
	require.NoError(t, err)
	require.NoError(t, ratecheckrepo.NewRepository(db).ReplaceBatch(env.ctx, []ratecheckdomain.RateCheckRow{
		{
			ID: node.Generate(), HotelID: env.hotelID,
			ReservationID: 1, ReservationDetailID: 9001, RateDate: businessDate,
			MealPlan: "BB", RoomType: "Deluxe", RoomNo: "101", GuestName: "Reed",
			NetRate: 1221, Adult: 2,
		},
		{
			ID: node.Generate(), HotelID: env.hotelID,
			ReservationID: 1, ReservationDetailID: 9002, RateDate: businessDate,
			RoomType: "Deluxe", RoomNo: "102", GuestName: "Comp",
			NetRate: 500, Adult: 1, IsFOC: true,
		},
		{
			ID: node.Generate(), HotelID: env.hotelID,
			ReservationID: 2, ReservationDetailID: 9003, RateDate: businessDate,
			RoomType: "Suite", RoomNo: "201", GuestName: "Ito",
			NetRate: 244.2, Adult: 1,
		},
	}))

	return env
}

func (e *testEnv) createAccount(t *testing.T, svc ledgerdomain.Service, code ledgerdomain.GLAccountCode, name string, accountType ledgerdomain.GLAccountType) snowflake.ID {
	t.Helper()
	resp, err := svc.CreateAccount(e.ctx, ledgerdomain.CreateAccountRequest{
		Code: string(code),
		Name: name,
		Type: string(accountType),
	})
	require.NoError(t, err)
	id, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)
	return id
}

func (e *testEnv) countTransactions(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&ledgerdomain.GLTransaction{}).Count(&count).Error)
	return count
}

func TestPreviewBuildsBalancedPayloads(t *testing.T) {
	env := setupEnv(t, true)

	resp, err := env.svc.Preview(env.ctx, domain.RunRequest{BusinessDate: testBusinessDate})
	require.NoError(t, err)

	require.Equal(t, 3, resp.Rows)
	require.Zero(t, resp.Posted)
	require.Len(t, resp.Payloads, 1)

	payload := resp.Payloads[0]
	require.InDelta(t, payload.TotalDebits(), payload.TotalCredits(), 0.01)
	// Row 9001: base 1000 splits 980 room + 20 breakfast + 221 tax.
	// Row 9003: base 200 on the default revenue account + 44.2 tax.
	require.InDelta(t, 1465.2, resp.GrossTotal, 0.01)

	require.Zero(t, env.countTransactions(t))
}

func TestRunPostsIdempotently(t *testing.T) {
	env := setupEnv(t, true)

	resp, err := env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: testBusinessDate})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Posted)
	require.Zero(t, resp.Skipped)
	require.Empty(t, resp.Payloads)
	require.Equal(t, int64(1), env.countTransactions(t))

	var tran ledgerdomain.GLTransaction
	require.NoError(t, env.db.First(&tran).Error)
	require.Equal(t, env.hotelID, tran.HotelID)
	require.Equal(t, 2, tran.TranTypeID)
	require.True(t, tran.IsGuestLedger)
	require.Equal(t, "night_audit", tran.SourceType)
	require.Equal(t, int64(146520), tran.GrossTotal)

	var lines []ledgerdomain.GLTransactionLine
	require.NoError(t, env.db.Where("gl_transaction_id = ?", tran.ID).Find(&lines).Error)
	var debits, credits int64
	for _, line := range lines {
		switch line.Direction {
		case ledgerdomain.GLEntryDirectionDebit:
			debits += line.Amount
		case ledgerdomain.GLEntryDirectionCredit:
			credits += line.Amount
		}
	}
	require.Equal(t, debits, credits)
	require.Equal(t, int64(146520), debits)

	replay, err := env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: testBusinessDate})
	require.NoError(t, err)
	require.Zero(t, replay.Posted)
	require.Equal(t, 1, replay.Skipped)
	require.Equal(t, int64(1), env.countTransactions(t))
}

func TestRunGroupedByReservationDetail(t *testing.T) {
	env := setupEnv(t, true)

	resp, err := env.svc.Run(env.ctx, domain.RunRequest{
		BusinessDate: testBusinessDate,
		Grouping:     string(domain.GroupByReservationDetail),
	})
	require.NoError(t, err)

	// The FOC row never produces a payload.
	require.Equal(t, 2, resp.Posted)
	require.Equal(t, int64(2), env.countTransactions(t))

	var trans []ledgerdomain.GLTransaction
	require.NoError(t, env.db.Order("gross_total DESC").Find(&trans).Error)
	require.Equal(t, int64(122100), trans[0].GrossTotal)
	require.Equal(t, int64(24420), trans[1].GrossTotal)
}

func TestRunRefusesUnresolvedTaxRules(t *testing.T) {
	env := setupEnv(t, true)

	require.NoError(t, env.taxRules.Create(env.ctx, &taxruledomain.TaxRule{
		ID: env.node.Generate(), HotelID: env.hotelID,
		TaxName: "Mystery", Percentage: 5, CalcBasedOn: "Base+Ghost", IsEnabled: true,
	}))

	_, err := env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: testBusinessDate})
	require.ErrorIs(t, err, domain.ErrUnresolvedTaxRules)
	require.Zero(t, env.countTransactions(t))
}

func TestRunRequiresChartOfAccounts(t *testing.T) {
	env := setupEnv(t, false)

	_, err := env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: testBusinessDate})
	require.ErrorIs(t, err, ledgerdomain.ErrMissingAccount)
	require.Zero(t, env.countTransactions(t))
}

func TestRunRequestValidation(t *testing.T) {
	env := setupEnv(t, true)

	_, err := env.svc.Run(context.Background(), domain.RunRequest{BusinessDate: testBusinessDate})
	require.ErrorIs(t, err, domain.ErrInvalidHotel)

	_, err = env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: "15-03-2026"})
	require.ErrorIs(t, err, domain.ErrInvalidBusinessDate)

	_, err = env.svc.Run(env.ctx, domain.RunRequest{BusinessDate: "2026-03-16"})
	require.ErrorIs(t, err, domain.ErrNoRateCheckRows)
}

func TestResolveLayersFromDependencies(t *testing.T) {
	rules := []taxruledomain.TaxRule{
		{TaxName: "Service", CalcBasedOn: "Base"},
		{TaxName: "VAT", CalcBasedOn: "Base+Service"},
		{TaxName: "City", CalcBasedOn: "Base+Service+VAT"},
		{TaxName: "Fixed", CalcBasedOn: "Subtotal2"},
	}

	layers := resolveLayers(rules)
	require.Equal(t, taxengine.LayerBase, layers[0])
	require.Equal(t, taxengine.LayerSubtotal1, layers[1])
	require.Equal(t, taxengine.LayerSubtotal2, layers[2])
	require.Equal(t, taxengine.LayerSubtotal2, layers[3])
}
