package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	"github.com/smallbiznis/folio/internal/clock"
	"github.com/smallbiznis/folio/internal/config"
	hoteldomain "github.com/smallbiznis/folio/internal/hotel/domain"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	mealplandomain "github.com/smallbiznis/folio/internal/mealplan/domain"
	"github.com/smallbiznis/folio/internal/nightaudit/builder"
	"github.com/smallbiznis/folio/internal/nightaudit/domain"
	obslogger "github.com/smallbiznis/folio/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/folio/internal/observability/metrics"
	ratecheckdomain "github.com/smallbiznis/folio/internal/ratecheck/domain"
	roomtypedomain "github.com/smallbiznis/folio/internal/roomtype/domain"
	"github.com/smallbiznis/folio/internal/taxengine"
	taxruledomain "github.com/smallbiznis/folio/internal/taxrule/domain"
)

const (
	sourceTypeNightAudit = "night_audit"
	businessDateLayout   = "2006-01-02"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	Holder     *config.NightAuditConfigHolder
	Hotels     hoteldomain.Repository
	TaxRules   taxruledomain.Repository
	RoomTypes  roomtypedomain.Service
	MealPlans  mealplandomain.Repository
	RateChecks ratecheckdomain.Repository
	Ledger     ledgerdomain.Service
	AuditSvc   auditdomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type nightAuditService struct {
	log        *zap.Logger
	clock      clock.Clock
	holder     *config.NightAuditConfigHolder
	hotels     hoteldomain.Repository
	taxRules   taxruledomain.Repository
	roomTypes  roomtypedomain.Service
	mealPlans  mealplandomain.Repository
	rateChecks ratecheckdomain.Repository
	ledger     ledgerdomain.Service
	auditSvc   auditdomain.Service
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &nightAuditService{
		log:        p.Log.Named("nightaudit.service"),
		clock:      p.Clock,
		holder:     p.Holder,
		hotels:     p.Hotels,
		taxRules:   p.TaxRules,
		roomTypes:  p.RoomTypes,
		mealPlans:  p.MealPlans,
		rateChecks: p.RateChecks,
		ledger:     p.Ledger,
		auditSvc:   p.AuditSvc,
		obsMetrics: p.ObsMetrics,
	}
}

// run is one prepared audit pass: the loaded snapshots plus the payloads
// built from them.
type run struct {
	hotel        *hoteldomain.Hotel
	businessDate time.Time
	grouping     domain.Grouping
	rows         []ratecheckdomain.RateCheckRow
	payloads     []domain.Payload
}

func (s *nightAuditService) Preview(ctx context.Context, req domain.RunRequest) (*domain.RunResponse, error) {
	prepared, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := s.response(prepared)
	resp.Payloads = prepared.payloads
	return resp, nil
}

func (s *nightAuditService) Run(ctx context.Context, req domain.RunRequest) (*domain.RunResponse, error) {
	log := obslogger.WithContext(ctx, s.log)

	prepared, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := s.response(prepared)
	for i := range prepared.payloads {
		inserted, err := s.post(ctx, prepared, &prepared.payloads[i])
		if err != nil {
			s.recordRun(ctx, prepared.hotel.ID, "error")
			return nil, err
		}
		if inserted {
			resp.Posted++
		} else {
			resp.Skipped++
		}
	}

	outcome := "posted"
	if resp.Posted == 0 {
		outcome = "noop"
	}
	s.recordRun(ctx, prepared.hotel.ID, outcome)

	if err := s.auditSvc.AuditLog(ctx, prepared.hotel.ID, "nightaudit.run", "night_audit", nil, map[string]any{
		"business_date": prepared.businessDate.Format(businessDateLayout),
		"grouping":      string(prepared.grouping),
		"rows":          resp.Rows,
		"posted":        resp.Posted,
		"skipped":       resp.Skipped,
	}); err != nil {
		log.Warn("failed to write audit log", zap.Error(err))
	}

	log.Info("night audit run completed",
		zap.String("hotel_id", prepared.hotel.ID.String()),
		zap.String("business_date", prepared.businessDate.Format(businessDateLayout)),
		zap.String("grouping", string(prepared.grouping)),
		zap.Int("rows", resp.Rows),
		zap.Int("posted", resp.Posted),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func (s *nightAuditService) response(prepared *run) *domain.RunResponse {
	var gross float64
	for _, payload := range prepared.payloads {
		gross += payload.TranValue
	}
	return &domain.RunResponse{
		HotelID:      prepared.hotel.ID.String(),
		BusinessDate: prepared.businessDate.Format(businessDateLayout),
		Grouping:     prepared.grouping,
		Rows:         len(prepared.rows),
		GrossTotal:   gross,
		RanAt:        s.clock.Now(),
	}
}

func (s *nightAuditService) prepare(ctx context.Context, req domain.RunRequest) (*run, error) {
	log := obslogger.WithContext(ctx, s.log)

	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidHotel
	}

	businessDate, err := time.ParseInLocation(businessDateLayout, req.BusinessDate, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidBusinessDate
	}

	hotel, err := s.hotels.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, domain.ErrHotelNotFound
	}

	grouping := domain.ParseGrouping(req.Grouping)

	taxRules, err := s.taxRules.ListEnabled(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	ladder, unresolved := buildLadder(taxRules)
	if len(unresolved) > 0 {
		log.Warn("refusing to post with unresolved tax rules",
			zap.String("hotel_id", hotelID.String()),
			zap.Strings("unresolved", unresolved),
		)
		if s.obsMetrics != nil {
			s.obsMetrics.RecordUnresolvedRules(ctx, hotelID.String(), len(unresolved))
		}
		return nil, domain.ErrUnresolvedTaxRules
	}

	rows, err := s.rateChecks.ListByDate(ctx, hotelID, businessDate)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNoRateCheckRows
	}

	roomTypeAccounts, err := s.roomTypes.GLAccountMap(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	mealPlans, err := s.mealPlans.ListEnabled(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	cfg := s.holder.Get()
	accounts, err := s.resolveAccounts(ctx, hotelID, cfg.Accounts)
	if err != nil {
		return nil, err
	}

	in := builder.Input{
		TranDate:         businessDate,
		CurrencyCode:     hotel.CurrencyCode,
		Grouping:         grouping,
		Rows:             builderRows(rows),
		TaxRules:         ladder,
		MealPlans:        mealPlans,
		MealPrices:       mealPrices(hotel, cfg.MealPrices),
		ItemizeMeals:     cfg.ItemizeMeals,
		RoomTypeAccounts: roomTypeAccounts,
		Accounts:         accounts,
	}

	return &run{
		hotel:        hotel,
		businessDate: businessDate,
		grouping:     grouping,
		rows:         rows,
		payloads:     builder.Build(in),
	}, nil
}

func (s *nightAuditService) post(ctx context.Context, prepared *run, payload *domain.Payload) (bool, error) {
	tran := &ledgerdomain.GLTransaction{
		HotelID:       prepared.hotel.ID,
		TranDate:      payload.TranDate,
		TranTypeID:    payload.TranTypeID,
		IsGuestLedger: payload.IsGuestLedger,
		Memo:          payload.Memo,
		RefNo:         payload.RefNo,
		Remarks:       payload.Remarks,
		CurrencyCode:  payload.CurrencyCode,
		Checksum:      payloadChecksum(prepared.hotel.ID, prepared.grouping, payload),
		SourceType:    sourceTypeNightAudit,
		GrossTotal:    ledgerdomain.ToCents(payload.TranValue),
	}

	lines := make([]ledgerdomain.GLTransactionLine, 0, len(payload.GLAccTransactions))
	for _, line := range payload.GLAccTransactions {
		direction := ledgerdomain.GLEntryDirectionCredit
		amount := line.Credit
		if line.Debit > 0 {
			direction = ledgerdomain.GLEntryDirectionDebit
			amount = line.Debit
		}
		lines = append(lines, ledgerdomain.GLTransactionLine{
			AccountID:           line.AccountID,
			Direction:           direction,
			Amount:              ledgerdomain.ToCents(amount),
			Memo:                line.Memo,
			ReservationDetailID: line.ReservationDetailID,
		})
	}

	return s.ledger.CreateTransaction(ctx, tran, lines)
}

func (s *nightAuditService) resolveAccounts(ctx context.Context, hotelID snowflake.ID, cfg config.PostingAccounts) (builder.Accounts, error) {
	codes := []ledgerdomain.GLAccountCode{
		ledgerdomain.GLAccountCode(cfg.GuestLedger),
		ledgerdomain.GLAccountCode(cfg.DefaultRoomRevenue),
		ledgerdomain.GLAccountCode(cfg.Breakfast),
		ledgerdomain.GLAccountCode(cfg.Lunch),
		ledgerdomain.GLAccountCode(cfg.Dinner),
		ledgerdomain.GLAccountCode(cfg.AllInclusive),
		ledgerdomain.AccountCodeTaxPayable,
	}

	resolved, err := s.ledger.ResolveAccounts(ctx, hotelID, codes)
	if err != nil {
		return builder.Accounts{}, err
	}

	return builder.Accounts{
		GuestLedger:         resolved[ledgerdomain.GLAccountCode(cfg.GuestLedger)],
		DefaultRoomRevenue:  resolved[ledgerdomain.GLAccountCode(cfg.DefaultRoomRevenue)],
		DefaultTax:          resolved[ledgerdomain.AccountCodeTaxPayable],
		BreakfastRevenue:    resolved[ledgerdomain.GLAccountCode(cfg.Breakfast)],
		LunchRevenue:        resolved[ledgerdomain.GLAccountCode(cfg.Lunch)],
		DinnerRevenue:       resolved[ledgerdomain.GLAccountCode(cfg.Dinner)],
		AllInclusiveRevenue: resolved[ledgerdomain.GLAccountCode(cfg.AllInclusive)],
	}, nil
}

func (s *nightAuditService) recordRun(ctx context.Context, hotelID snowflake.ID, outcome string) {
	if s.obsMetrics != nil {
		s.obsMetrics.RecordAuditRun(ctx, hotelID.String(), outcome)
	}
}

func builderRows(rows []ratecheckdomain.RateCheckRow) []builder.Row {
	out := make([]builder.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, builder.Row{
			ReservationDetailID: row.ReservationDetailID,
			RoomType:            row.RoomType,
			RoomNo:              row.RoomNo,
			GuestName:           row.GuestName,
			MealPlan:            row.MealPlan,
			Gross:               row.NetRate,
			Adults:              row.Adult,
			Children:            row.Child,
			IsFOC:               row.IsFOC,
		})
	}
	return out
}

func mealPrices(hotel *hoteldomain.Hotel, defaults config.MealPriceDefaults) mealplandomain.MealPrices {
	prices := mealplandomain.MealPrices{
		Breakfast:    defaults.Breakfast,
		Lunch:        defaults.Lunch,
		Dinner:       defaults.Dinner,
		AllInclusive: defaults.AllInclusive,
	}
	if hotel.BreakfastPrice != nil {
		prices.Breakfast = *hotel.BreakfastPrice
	}
	if hotel.LunchPrice != nil {
		prices.Lunch = *hotel.LunchPrice
	}
	if hotel.DinnerPrice != nil {
		prices.Dinner = *hotel.DinnerPrice
	}
	if hotel.AllInclusivePrice != nil {
		prices.AllInclusive = *hotel.AllInclusivePrice
	}
	return prices
}

// buildLadder maps the hotel's rules onto the fixed-order ladder. Rules in
// the named-dependency grammar are first checked against the resolver, then
// placed one layer above the deepest rule they reference, which reproduces
// cascades like "Base" / "Base+Service" exactly.
func buildLadder(rules []taxruledomain.TaxRule) ([]builder.TaxRule, []string) {
	engineRules := make([]taxengine.Rule, 0, len(rules))
	for _, rule := range rules {
		basedOn := rule.CalcBasedOn
		if _, ok := taxengine.ParseLayer(basedOn); ok {
			basedOn = "Base"
		}
		engineRules = append(engineRules, taxengine.Rule{
			Name:        rule.TaxName,
			Percentage:  rule.Percentage,
			CalcBasedOn: basedOn,
		})
	}
	if result := taxengine.ComputeInclusiveFromExclusive(100, engineRules); len(result.Unresolved) > 0 {
		return nil, result.Unresolved
	}

	layers := resolveLayers(rules)

	out := make([]builder.TaxRule, 0, len(rules))
	for i, rule := range rules {
		var accountID snowflake.ID
		if rule.AccountID != nil {
			accountID = *rule.AccountID
		}
		out = append(out, builder.TaxRule{
			Name:       rule.TaxName,
			Percentage: rule.Percentage,
			Layer:      layers[i],
			AccountID:  accountID,
		})
	}
	return out, nil
}

func resolveLayers(rules []taxruledomain.TaxRule) []taxengine.Layer {
	byName := make(map[string]int, len(rules))
	for i, rule := range rules {
		byName[normalizeName(rule.TaxName)] = i
	}

	layers := make([]taxengine.Layer, len(rules))
	done := make([]bool, len(rules))

	var layerOf func(i int) taxengine.Layer
	layerOf = func(i int) taxengine.Layer {
		if done[i] {
			return layers[i]
		}
		done[i] = true

		if layer, ok := taxengine.ParseLayer(rules[i].CalcBasedOn); ok {
			layers[i] = layer
			return layer
		}

		layer := taxengine.LayerBase
		for _, token := range splitTokens(rules[i].CalcBasedOn) {
			dep, ok := byName[token]
			if !ok || dep == i {
				continue
			}
			if next := layerOf(dep) + 1; next > layer {
				layer = next
			}
		}
		if layer > taxengine.LayerSubtotal4 {
			layer = taxengine.LayerSubtotal4
		}
		layers[i] = layer
		return layer
	}

	for i := range rules {
		layerOf(i)
	}
	return layers
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func splitTokens(expr string) []string {
	parts := strings.Split(expr, "+")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = normalizeName(part); part != "" && part != "base" {
			out = append(out, part)
		}
	}
	return out
}

func payloadChecksum(hotelID snowflake.ID, grouping domain.Grouping, payload *domain.Payload) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s",
		hotelID.String(),
		payload.TranDate.Format(businessDateLayout),
		grouping,
		payload.RefNo,
	))
	return hex.EncodeToString(sum[:])
}
