// Package builder turns a batch of nightly rate-check rows into balanced,
// postable journal payloads. It is pure computation: no I/O, no clocks,
// safe to call concurrently.
package builder

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	nightauditdomain "github.com/smallbiznis/folio/internal/nightaudit/domain"
	"github.com/smallbiznis/folio/internal/taxengine"
)

// Row is one reservation-night to post.
type Row struct {
	ReservationDetailID snowflake.ID
	RoomType            string
	RoomNo              string
	GuestName           string
	MealPlan            string
	Gross               float64
	Adults              int
	Children            int
	IsFOC               bool
}

// TaxRule is one ladder rule plus the liability account its amount
// credits. A zero AccountID falls back to the default tax account.
type TaxRule struct {
	Name       string
	Percentage float64
	Layer      taxengine.Layer
	AccountID  snowflake.ID
}

// Accounts are the well-known GL destinations every batch needs.
type Accounts struct {
	GuestLedger         snowflake.ID
	DefaultRoomRevenue  snowflake.ID
	DefaultTax          snowflake.ID
	BreakfastRevenue    snowflake.ID
	LunchRevenue        snowflake.ID
	DinnerRevenue       snowflake.ID
	AllInclusiveRevenue snowflake.ID
}

// Input is everything one Build call operates on. Callers supply
// consistent snapshots; the builder never refetches mid-computation.
type Input struct {
	TranDate     time.Time
	CurrencyCode string
	Grouping     nightauditdomain.Grouping

	Rows     []Row
	TaxRules []TaxRule

	MealPlans    []mealplandomain.MealPlanRule
	MealPrices   mealplandomain.MealPrices
	ItemizeMeals bool

	// Revenue account resolution chain, most specific first.
	ResolveRevenueAccount func(row Row) (snowflake.ID, bool)
	RoomTypeAccounts      map[string]snowflake.ID

	Accounts Accounts
}

// Build produces one payload per group: the whole batch under GroupNone,
// or one self-balanced payload per reservation detail.
func Build(in Input) []nightauditdomain.Payload {
	groups := groupRows(in)

	payloads := make([]nightauditdomain.Payload, 0, len(groups))
	for _, group := range groups {
		if payload, ok := buildGroup(in, group); ok {
			payloads = append(payloads, payload)
		}
	}
	return payloads
}

type rowGroup struct {
	detailID *snowflake.ID
	rows     []Row
}

func groupRows(in Input) []rowGroup {
	if in.Grouping != nightauditdomain.GroupByReservationDetail {
		return []rowGroup{{rows: in.Rows}}
	}

	index := map[snowflake.ID]int{}
	var groups []rowGroup
	for _, row := range in.Rows {
		id := row.ReservationDetailID
		at, ok := index[id]
		if !ok {
			detailID := id
			index[id] = len(groups)
			groups = append(groups, rowGroup{detailID: &detailID})
			at = index[id]
		}
		groups[at].rows = append(groups[at].rows, row)
	}
	return groups
}

// accumulator preserves first-touch key order so emitted lines are
// deterministic regardless of map iteration.
type accumulator struct {
	order  []snowflake.ID
	totals map[snowflake.ID]float64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: map[snowflake.ID]float64{}}
}

func (a *accumulator) add(account snowflake.ID, amount float64) {
	if account == 0 {
		return
	}
	if _, ok := a.totals[account]; !ok {
		a.order = append(a.order, account)
	}
	a.totals[account] += amount
}

func buildGroup(in Input, group rowGroup) (nightauditdomain.Payload, bool) {
	ladder := make([]taxengine.LadderRule, 0, len(in.TaxRules))
	taxAccountByName := make(map[string]snowflake.ID, len(in.TaxRules))
	for _, rule := range in.TaxRules {
		ladder = append(ladder, taxengine.LadderRule{
			Name:       rule.Name,
			Percentage: rule.Percentage,
			Layer:      rule.Layer,
		})
		account := rule.AccountID
		if account == 0 {
			account = in.Accounts.DefaultTax
		}
		taxAccountByName[strings.ToLower(rule.Name)] = account
	}

	roomRevenueByAcc := newAccumulator()
	taxTotalsByAcc := newAccumulator()
	var meals mealplandomain.Allocation

	var firstRow *Row
	for i := range group.rows {
		row := group.rows[i]
		if row.IsFOC || row.Gross <= 0 {
			continue
		}
		if firstRow == nil {
			firstRow = &group.rows[i]
		}

		base, shares := taxengine.SplitInclusive(row.Gross, ladder)

		mealTotal := 0.0
		if in.ItemizeMeals {
			plan := mealplandomain.ResolvePlan(in.MealPlans, row.MealPlan)
			alloc := mealplandomain.Allocate(row.Adults, row.Children, plan, in.MealPrices)
			meals.Breakfast += alloc.Breakfast
			meals.Lunch += alloc.Lunch
			meals.Dinner += alloc.Dinner
			meals.AllInclusive += alloc.AllInclusive
			mealTotal = alloc.Total
		}

		// Malformed meal prices must never invert revenue sign.
		roomBase := math.Max(0, base-mealTotal)
		roomRevenueByAcc.add(resolveRevenueAccount(in, row), roomBase)

		for _, share := range shares {
			taxTotalsByAcc.add(taxAccountByName[strings.ToLower(share.Rule.Name)], share.Amount)
		}
	}

	if firstRow == nil {
		return nightauditdomain.Payload{}, false
	}

	var lines []nightauditdomain.JournalLine
	emitCredit := func(account snowflake.ID, amount float64, memo string) {
		amount = r2(amount)
		if amount == 0 {
			return
		}
		lines = append(lines, nightauditdomain.JournalLine{
			AccountID:           account,
			Credit:              amount,
			CreditCurr:          amount,
			Memo:                memo,
			ReservationDetailID: group.detailID,
		})
	}

	for _, account := range roomRevenueByAcc.order {
		emitCredit(account, roomRevenueByAcc.totals[account], "Room revenue")
	}
	for _, account := range taxTotalsByAcc.order {
		emitCredit(account, taxTotalsByAcc.totals[account], "Tax")
	}
	if in.ItemizeMeals {
		emitCredit(in.Accounts.BreakfastRevenue, meals.Breakfast, "Breakfast")
		emitCredit(in.Accounts.LunchRevenue, meals.Lunch, "Lunch")
		emitCredit(in.Accounts.DinnerRevenue, meals.Dinner, "Dinner")
		emitCredit(in.Accounts.AllInclusiveRevenue, meals.AllInclusive, "All Inclusive")
	}

	if len(lines) == 0 {
		return nightauditdomain.Payload{}, false
	}

	// The single guest-ledger debit equals the emitted credits exactly,
	// which is what keeps the payload balanced after rounding.
	var totalCredits float64
	for _, line := range lines {
		totalCredits += line.Credit
	}
	totalCredits = r2(totalCredits)

	debit := nightauditdomain.JournalLine{
		AccountID:           in.Accounts.GuestLedger,
		Debit:               totalCredits,
		DebitCurr:           totalCredits,
		Memo:                "Guest ledger",
		ReservationDetailID: group.detailID,
	}
	lines = append([]nightauditdomain.JournalLine{debit}, lines...)

	payload := nightauditdomain.Payload{
		TranDate:            in.TranDate,
		TranTypeID:          2,
		IsGuestLedger:       true,
		CurrencyCode:        in.CurrencyCode,
		ReservationDetailID: group.detailID,
		TranValue:           totalCredits,
		GLAccTransactions:   lines,
	}
	payload.Memo, payload.RefNo, payload.Remarks = describe(in.TranDate, group.detailID, firstRow)
	return payload, true
}

func resolveRevenueAccount(in Input, row Row) snowflake.ID {
	if in.ResolveRevenueAccount != nil {
		if account, ok := in.ResolveRevenueAccount(row); ok && account != 0 {
			return account
		}
	}
	if account, ok := in.RoomTypeAccounts[strings.ToLower(strings.TrimSpace(row.RoomType))]; ok && account != 0 {
		return account
	}
	return in.Accounts.DefaultRoomRevenue
}

func describe(tranDate time.Time, detailID *snowflake.ID, row *Row) (memo, refNo, remarks string) {
	date := tranDate.Format("2006-01-02")
	if detailID == nil {
		memo = "Night audit " + date
		refNo = "NA-" + tranDate.Format("20060102")
		remarks = memo
		return
	}

	memo = fmt.Sprintf("Night audit %s RM %s %s", date, row.RoomNo, row.GuestName)
	refNo = fmt.Sprintf("NA-%s-%s", tranDate.Format("20060102"), detailID.String())
	remarks = fmt.Sprintf("Reservation detail %s", detailID.String())
	return
}

func r2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
