package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// GLEntryDirection represents debit or credit postings.
type GLEntryDirection string

const (
	GLEntryDirectionDebit  GLEntryDirection = "debit"
	GLEntryDirectionCredit GLEntryDirection = "credit"
)

type GLAccountType string

const (
	AccountTypeAsset     GLAccountType = "asset"
	AccountTypeLiability GLAccountType = "liability"
	AccountTypeRevenue   GLAccountType = "revenue"
	AccountTypeExpense   GLAccountType = "expense"
)

type GLAccountCode string

// Well-known account codes the night audit posts against. These are
// engine-facing identifiers; do not rename once transactions exist.
const (
	// Assets
	AccountCodeGuestLedger GLAccountCode = "guest_ledger"

	// Revenue
	AccountCodeRoomRevenue         GLAccountCode = "room_revenue"
	AccountCodeBreakfastRevenue    GLAccountCode = "breakfast_revenue"
	AccountCodeLunchRevenue        GLAccountCode = "lunch_revenue"
	AccountCodeDinnerRevenue       GLAccountCode = "dinner_revenue"
	AccountCodeAllInclusiveRevenue GLAccountCode = "all_inclusive_revenue"

	// Liabilities
	AccountCodeTaxPayable GLAccountCode = "tax_payable"
)

// GLAccount defines a chart-of-accounts entry.
type GLAccount struct {
	ID        snowflake.ID  `gorm:"primaryKey"`
	HotelID   snowflake.ID  `gorm:"column:hotel_id;not null;index;uniqueIndex:ux_gl_accounts_hotel_code,priority:1"`
	Code      GLAccountCode `gorm:"type:text;not null;uniqueIndex:ux_gl_accounts_hotel_code,priority:2"`
	Name      string        `gorm:"type:text;not null"`
	Type      GLAccountType `gorm:"type:text;not null"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (GLAccount) TableName() string { return "gl_accounts" }

// GLTransaction captures the immutable header for one posted journal.
type GLTransaction struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	HotelID snowflake.ID `gorm:"column:hotel_id;not null;index;uniqueIndex:ux_gl_transactions_hotel_checksum,priority:1"`

	TranDate      time.Time `gorm:"column:tran_date;type:date;not null;index"`
	TranTypeID    int       `gorm:"column:tran_type_id;not null"`
	IsGuestLedger bool      `gorm:"column:is_guest_ledger;not null;default:false"`

	Memo         string `gorm:"type:text"`
	RefNo        string `gorm:"column:ref_no;type:text"`
	Remarks      string `gorm:"type:text"`
	CurrencyCode string `gorm:"column:currency_code;type:text;not null"`

	// Checksum dedupes replayed postings of the same logical journal.
	Checksum string `gorm:"type:text;not null;uniqueIndex:ux_gl_transactions_hotel_checksum,priority:2"`

	SourceType string `gorm:"column:source_type;type:text;not null"`
	GrossTotal int64  `gorm:"column:gross_total;not null"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (GLTransaction) TableName() string { return "gl_transactions" }

// GLTransactionLine is a double-entry posting line. Amounts are cents.
type GLTransactionLine struct {
	ID              snowflake.ID     `gorm:"primaryKey"`
	GLTransactionID snowflake.ID     `gorm:"column:gl_transaction_id;not null;index"`
	AccountID       snowflake.ID     `gorm:"column:account_id;not null;index"`
	Direction       GLEntryDirection `gorm:"type:text;not null"`
	Amount          int64            `gorm:"not null"`

	Memo                string        `gorm:"type:text"`
	ReservationDetailID *snowflake.ID `gorm:"column:reservation_detail_id"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (GLTransactionLine) TableName() string { return "gl_transaction_lines" }
