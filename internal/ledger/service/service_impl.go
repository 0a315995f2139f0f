package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/smallbiznis/folio/internal/audit/domain"
	"github.com/smallbiznis/folio/internal/hotelcontext"
	ledgerdomain "github.com/smallbiznis/folio/internal/ledger/domain"
	obsmetrics "github.com/smallbiznis/folio/internal/observability/metrics"
	"github.com/smallbiznis/folio/pkg/db/option"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	AuditSvc   auditdomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	auditSvc   auditdomain.Service
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) ledgerdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("ledger.service"),
		genID:      p.GenID,
		auditSvc:   p.AuditSvc,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) CreateAccount(ctx context.Context, req ledgerdomain.CreateAccountRequest) (*ledgerdomain.AccountResponse, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, ledgerdomain.ErrInvalidHotel
	}

	code := ledgerdomain.GLAccountCode(strings.ToLower(strings.TrimSpace(req.Code)))
	if code == "" {
		return nil, ledgerdomain.ErrInvalidAccountCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ledgerdomain.ErrInvalidName
	}

	accountType, err := normalizeAccountType(req.Type)
	if err != nil {
		return nil, err
	}

	record := &ledgerdomain.GLAccount{
		ID:        s.genID.Generate(),
		HotelID:   hotelID,
		Code:      code,
		Name:      name,
		Type:      accountType,
		CreatedAt: time.Now().UTC(),
	}

	result := s.db.WithContext(ctx).Exec(
		`INSERT INTO gl_accounts (id, hotel_id, code, name, type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (hotel_id, code) DO NOTHING`,
		record.ID,
		record.HotelID,
		record.Code,
		record.Name,
		record.Type,
		record.CreatedAt,
	)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ledgerdomain.ErrAccountCodeTaken
	}

	resp := toAccountResponse(record)
	return &resp, nil
}

func (s *Service) ListAccounts(ctx context.Context, req ledgerdomain.ListAccountsRequest) ([]ledgerdomain.AccountResponse, error) {
	hotelID, ok := hotelcontext.HotelIDFromContext(ctx)
	if !ok || hotelID == 0 {
		return nil, ledgerdomain.ErrInvalidHotel
	}

	var items []ledgerdomain.GLAccount
	stmt := s.db.WithContext(ctx).
		Model(&ledgerdomain.GLAccount{}).
		Where("hotel_id = ?", hotelID)

	if accountType := strings.ToLower(strings.TrimSpace(req.Type)); accountType != "" {
		stmt = stmt.Where("type = ?", accountType)
	}

	stmt = option.WithSortBy(option.WithQuerySortBy(req.SortBy, req.OrderBy, map[string]bool{
		"created_at": true,
		"code":       true,
		"name":       true,
	})).Apply(stmt)

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}

	resp := make([]ledgerdomain.AccountResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toAccountResponse(&item))
	}
	return resp, nil
}

func (s *Service) ResolveAccounts(ctx context.Context, hotelID snowflake.ID, codes []ledgerdomain.GLAccountCode) (map[ledgerdomain.GLAccountCode]snowflake.ID, error) {
	if hotelID == 0 {
		return nil, ledgerdomain.ErrInvalidHotel
	}

	var accounts []ledgerdomain.GLAccount
	err := s.db.WithContext(ctx).
		Where("hotel_id = ? AND code IN ?", hotelID, codes).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	resolved := make(map[ledgerdomain.GLAccountCode]snowflake.ID, len(accounts))
	for _, account := range accounts {
		resolved[account.Code] = account.ID
	}
	for _, code := range codes {
		if _, ok := resolved[code]; !ok {
			s.log.Error("chart of accounts is missing a required code",
				zap.String("hotel_id", hotelID.String()),
				zap.String("code", string(code)),
			)
			return nil, ledgerdomain.ErrMissingAccount
		}
	}
	return resolved, nil
}

func (s *Service) CreateTransaction(ctx context.Context, tran *ledgerdomain.GLTransaction, lines []ledgerdomain.GLTransactionLine) (bool, error) {
	if tran == nil || tran.HotelID == 0 {
		return false, ledgerdomain.ErrInvalidHotel
	}
	if tran.TranDate.IsZero() {
		return false, ledgerdomain.ErrInvalidTranDate
	}
	if strings.TrimSpace(tran.CurrencyCode) == "" {
		return false, ledgerdomain.ErrInvalidCurrency
	}
	if strings.TrimSpace(tran.SourceType) == "" {
		return false, ledgerdomain.ErrInvalidSourceType
	}
	if strings.TrimSpace(tran.Checksum) == "" {
		return false, ledgerdomain.ErrInvalidChecksum
	}

	normalized := make([]ledgerdomain.GLTransactionLine, 0, len(lines))
	for _, line := range lines {
		if line.AccountID == 0 {
			return false, ledgerdomain.ErrInvalidAccount
		}
		direction, err := normalizeDirection(line.Direction)
		if err != nil {
			return false, err
		}
		line.Direction = direction
		normalized = append(normalized, line)
	}

	if err := ledgerdomain.ValidateBalanced(normalized); err != nil {
		return false, err
	}

	inserted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tranID := s.genID.Generate()
		now := time.Now().UTC()
		result := tx.WithContext(ctx).Exec(
			`INSERT INTO gl_transactions (
				id, hotel_id, tran_date, tran_type_id, is_guest_ledger, memo, ref_no, remarks,
				currency_code, checksum, source_type, gross_total, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (hotel_id, checksum) DO NOTHING`,
			tranID,
			tran.HotelID,
			tran.TranDate,
			tran.TranTypeID,
			tran.IsGuestLedger,
			tran.Memo,
			tran.RefNo,
			tran.Remarks,
			tran.CurrencyCode,
			tran.Checksum,
			tran.SourceType,
			tran.GrossTotal,
			now,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		inserted = true
		tran.ID = tranID

		for _, line := range normalized {
			if err := tx.WithContext(ctx).Exec(
				`INSERT INTO gl_transaction_lines (
					id, gl_transaction_id, account_id, direction, amount, memo,
					reservation_detail_id, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				s.genID.Generate(),
				tranID,
				line.AccountID,
				string(line.Direction),
				line.Amount,
				line.Memo,
				line.ReservationDetailID,
				now,
			).Error; err != nil {
				return err
			}
		}

		tranIDStr := tranID.String()
		metadata := map[string]any{
			"source_type":       tran.SourceType,
			"gl_transaction_id": tranIDStr,
			"tran_date":         tran.TranDate.Format("2006-01-02"),
			"gross_total":       tran.GrossTotal,
		}
		if s.auditSvc != nil {
			if err := s.auditSvc.AuditLog(ctx, tran.HotelID, "ledger.transaction_created", "gl_transaction", &tranIDStr, metadata); err != nil {
				s.log.Warn("failed to write ledger audit log", zap.Error(err))
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}
	if inserted && s.obsMetrics != nil {
		s.obsMetrics.RecordGLPosting(ctx, tran.HotelID.String(), tran.SourceType)
	}
	return inserted, nil
}

func toAccountResponse(account *ledgerdomain.GLAccount) ledgerdomain.AccountResponse {
	return ledgerdomain.AccountResponse{
		ID:        account.ID.String(),
		HotelID:   account.HotelID.String(),
		Code:      string(account.Code),
		Name:      account.Name,
		Type:      string(account.Type),
		CreatedAt: account.CreatedAt,
	}
}

func normalizeAccountType(value string) (ledgerdomain.GLAccountType, error) {
	normalized := ledgerdomain.GLAccountType(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case ledgerdomain.AccountTypeAsset,
		ledgerdomain.AccountTypeLiability,
		ledgerdomain.AccountTypeRevenue,
		ledgerdomain.AccountTypeExpense:
		return normalized, nil
	default:
		return "", ledgerdomain.ErrInvalidAccountType
	}
}

func normalizeDirection(direction ledgerdomain.GLEntryDirection) (ledgerdomain.GLEntryDirection, error) {
	normalized := strings.ToLower(strings.TrimSpace(string(direction)))
	switch normalized {
	case string(ledgerdomain.GLEntryDirectionDebit):
		return ledgerdomain.GLEntryDirectionDebit, nil
	case string(ledgerdomain.GLEntryDirectionCredit):
		return ledgerdomain.GLEntryDirectionCredit, nil
	default:
		return "", ledgerdomain.ErrInvalidLineDirection
	}
}
