package builder

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"

	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	"github.com/smallbiznis/folio/internal/taxengine"
)

const (
	acctGuestLedger  snowflake.ID = 101
	acctRoomDefault  snowflake.ID = 102
	acctTaxDefault   snowflake.ID = 103
	acctService      snowflake.ID = 201
	acctVAT          snowflake.ID = 202
	acctDeluxe       snowflake.ID = 301
	acctBreakfast    snowflake.ID = 401
	acctLunch        snowflake.ID = 402
	acctDinner       snowflake.ID = 403
	acctAllInclusive snowflake.ID = 404
)

func testAccounts() Accounts {
	return Accounts{
		GuestLedger:         acctGuestLedger,
		DefaultRoomRevenue:  acctRoomDefault,
		DefaultTax:          acctTaxDefault,
		BreakfastRevenue:    acctBreakfast,
		LunchRevenue:        acctLunch,
		DinnerRevenue:       acctDinner,
		AllInclusiveRevenue: acctAllInclusive,
	}
}

func testTaxRules() []TaxRule {
	return []TaxRule{
		{Name: "Service", Percentage: 10, Layer: taxengine.LayerBase, AccountID: acctService},
		{Name: "VAT", Percentage: 11, Layer: taxengine.LayerSubtotal1, AccountID: acctVAT},
	}
}

func testMealPlans() []mealplandomain.MealPlanRule {
	return []mealplandomain.MealPlanRule{
		{MealPlan: "Bed and Breakfast", ShortCode: "BB", BreakFast: true},
		{MealPlan: "Half Board", ShortCode: "HB", BreakFast: true, Dinner: true},
		{MealPlan: "All Inclusive", ShortCode: "AI", AI: true},
	}
}

func testInput(grouping nightauditdomain.Grouping, rows []Row) Input {
	return Input{
		TranDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		Grouping:     grouping,
		Rows:         rows,
		TaxRules:     testTaxRules(),
		MealPlans:    testMealPlans(),
		MealPrices:   mealplandomain.MealPrices{Breakfast: 50, Lunch: 60, Dinner: 70, AllInclusive: 150},
		ItemizeMeals: true,
		RoomTypeAccounts: map[string]snowflake.ID{
			"deluxe": acctDeluxe,
		},
		Accounts: testAccounts(),
	}
}

func creditFor(t *testing.T, payload nightauditdomain.Payload, account snowflake.ID) float64 {
	t.Helper()
	var total float64
	for _, line := range payload.GLAccTransactions {
		if line.AccountID == account && line.Credit > 0 {
			total += line.Credit
		}
	}
	return total
}

func requireBalanced(t *testing.T, payload nightauditdomain.Payload) {
	t.Helper()
	require.InDelta(t, payload.TotalDebits(), payload.TotalCredits(), 0.01)
	require.Equal(t, acctGuestLedger, payload.GLAccTransactions[0].AccountID)
	require.InDelta(t, payload.TranValue, payload.GLAccTransactions[0].Debit, 0.001)
}

func TestBuildBatchPayload(t *testing.T) {
	// Factor 1.1 * 1.11 = 1.221, so gross 1221 strips to base 1000.
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", RoomNo: "101", GuestName: "Reed", MealPlan: "BB", Gross: 1221, Adults: 2},
		{ReservationDetailID: 9002, RoomType: "Deluxe", RoomNo: "102", GuestName: "Comp", MealPlan: "BB", Gross: 500, Adults: 1, IsFOC: true},
		{ReservationDetailID: 9003, RoomType: "Deluxe", RoomNo: "103", GuestName: "Zero", MealPlan: "BB", Gross: 0, Adults: 1},
	}

	payloads := Build(testInput(nightauditdomain.GroupNone, rows))
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	require.Equal(t, 2, payload.TranTypeID)
	require.True(t, payload.IsGuestLedger)
	require.Equal(t, "USD", payload.CurrencyCode)
	require.Nil(t, payload.ReservationDetailID)

	// 2 adults at breakfast 50 carve 100 out of the 1000 base.
	require.InDelta(t, 900, creditFor(t, payload, acctDeluxe), 0.001)
	require.InDelta(t, 100, creditFor(t, payload, acctBreakfast), 0.001)
	require.InDelta(t, 100, creditFor(t, payload, acctService), 0.001)
	require.InDelta(t, 121, creditFor(t, payload, acctVAT), 0.001)
	require.InDelta(t, 1221, payload.TranValue, 0.001)
}

func TestBuildSkipsEmptyBatch(t *testing.T) {
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", Gross: 800, Adults: 2, IsFOC: true},
		{ReservationDetailID: 9002, RoomType: "Deluxe", Gross: 0, Adults: 1},
	}
	require.Empty(t, Build(testInput(nightauditdomain.GroupNone, rows)))
	require.Empty(t, Build(testInput(nightauditdomain.GroupNone, nil)))
}

func TestBuildSkipsNegativeGross(t *testing.T) {
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", Gross: -500, Adults: 2},
	}
	require.Empty(t, Build(testInput(nightauditdomain.GroupNone, rows)))

	// A negative row alongside a chargeable one contributes nothing.
	rows = append(rows, Row{ReservationDetailID: 9002, RoomType: "Deluxe", Gross: 1221, Adults: 2})
	payloads := Build(testInput(nightauditdomain.GroupNone, rows))
	require.Len(t, payloads, 1)
	requireBalanced(t, payloads[0])
	require.Equal(t, 1221.0, payloads[0].TranValue)
	for _, line := range payloads[0].GLAccTransactions {
		require.GreaterOrEqual(t, line.Debit, 0.0)
		require.GreaterOrEqual(t, line.Credit, 0.0)
	}
}

func TestBuildGroupByReservationDetail(t *testing.T) {
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", RoomNo: "101", GuestName: "Reed", MealPlan: "BB", Gross: 1221, Adults: 2},
		{ReservationDetailID: 9002, RoomType: "Suite", RoomNo: "201", GuestName: "Ito", MealPlan: "HB", Gross: 610.5, Adults: 1},
	}

	payloads := Build(testInput(nightauditdomain.GroupByReservationDetail, rows))
	require.Len(t, payloads, 2)

	for _, payload := range payloads {
		requireBalanced(t, payload)
		require.NotNil(t, payload.ReservationDetailID)
		for _, line := range payload.GLAccTransactions {
			require.NotNil(t, line.ReservationDetailID)
			require.Equal(t, *payload.ReservationDetailID, *line.ReservationDetailID)
		}
	}

	require.Equal(t, snowflake.ID(9001), *payloads[0].ReservationDetailID)
	require.Equal(t, snowflake.ID(9002), *payloads[1].ReservationDetailID)

	// Suite is unmapped, so its room share lands on the default account.
	require.InDelta(t, 900, creditFor(t, payloads[0], acctDeluxe), 0.001)
	suiteBase := 610.5 / 1.221
	suiteMeals := 50 + 70.0
	require.InDelta(t, suiteBase-suiteMeals, creditFor(t, payloads[1], acctRoomDefault), 0.01)
}

func TestBuildRoomBaseNeverNegative(t *testing.T) {
	// Base 100, meals 2 adults half board = 240: room revenue clamps to 0.
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", MealPlan: "HB", Gross: 122.1, Adults: 2},
	}

	payloads := Build(testInput(nightauditdomain.GroupNone, rows))
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	require.Zero(t, creditFor(t, payload, acctDeluxe))
	require.InDelta(t, 100, creditFor(t, payload, acctBreakfast), 0.01)
	require.InDelta(t, 140, creditFor(t, payload, acctDinner), 0.01)
}

func TestBuildAllInclusiveSupersedesMealFlags(t *testing.T) {
	rows := []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", MealPlan: "AI", Gross: 1221, Adults: 2, Children: 2},
	}

	payloads := Build(testInput(nightauditdomain.GroupNone, rows))
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	// 3 person-equivalents at 150.
	require.InDelta(t, 450, creditFor(t, payload, acctAllInclusive), 0.001)
	require.Zero(t, creditFor(t, payload, acctBreakfast))
	require.InDelta(t, 550, creditFor(t, payload, acctDeluxe), 0.001)
}

func TestBuildItemizeMealsDisabled(t *testing.T) {
	in := testInput(nightauditdomain.GroupNone, []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", MealPlan: "BB", Gross: 1221, Adults: 2},
	})
	in.ItemizeMeals = false

	payloads := Build(in)
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	require.InDelta(t, 1000, creditFor(t, payload, acctDeluxe), 0.001)
	require.Zero(t, creditFor(t, payload, acctBreakfast))
}

func TestBuildRevenueAccountChain(t *testing.T) {
	in := testInput(nightauditdomain.GroupNone, []Row{
		{ReservationDetailID: 9001, RoomType: "deluxe", Gross: 1221, Adults: 1},
	})
	in.ResolveRevenueAccount = func(row Row) (snowflake.ID, bool) {
		if row.RoomNo == "" {
			return 777, true
		}
		return 0, false
	}

	payloads := Build(in)
	require.Len(t, payloads, 1)
	require.InDelta(t, 1000, creditFor(t, payloads[0], 777), 0.001)
	require.Zero(t, creditFor(t, payloads[0], acctDeluxe))
}

func TestBuildTaxRuleWithoutAccountUsesDefault(t *testing.T) {
	in := testInput(nightauditdomain.GroupNone, []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", Gross: 1221, Adults: 1},
	})
	in.TaxRules[1].AccountID = 0

	payloads := Build(in)
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	require.InDelta(t, 100, creditFor(t, payload, acctService), 0.001)
	require.InDelta(t, 121, creditFor(t, payload, acctTaxDefault), 0.001)
}

func TestBuildDropsLinesWithoutAccount(t *testing.T) {
	in := testInput(nightauditdomain.GroupNone, []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", MealPlan: "BB", Gross: 1221, Adults: 2},
	})
	in.Accounts.BreakfastRevenue = 0

	payloads := Build(in)
	require.Len(t, payloads, 1)

	// The breakfast carve-out vanishes with its account, and the debit
	// follows the credits that were actually emitted.
	payload := payloads[0]
	requireBalanced(t, payload)
	require.InDelta(t, 900, creditFor(t, payload, acctDeluxe), 0.001)
	require.InDelta(t, 1121, payload.TranValue, 0.001)
}

func TestBuildRoundsToCents(t *testing.T) {
	in := testInput(nightauditdomain.GroupNone, []Row{
		{ReservationDetailID: 9001, RoomType: "Deluxe", Gross: 100, Adults: 1},
	})

	payloads := Build(in)
	require.Len(t, payloads, 1)

	payload := payloads[0]
	requireBalanced(t, payload)
	for _, line := range payload.GLAccTransactions {
		require.InDelta(t, line.Credit, r2(line.Credit), 1e-9)
		require.InDelta(t, line.Debit, r2(line.Debit), 1e-9)
	}
}
