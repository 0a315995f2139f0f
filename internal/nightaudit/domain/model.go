package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Grouping selects how journal payloads are cut from a batch.
type Grouping string

const (
	// GroupNone emits one payload for the whole batch.
	GroupNone Grouping = "none"
	// GroupByReservationDetail emits one self-balanced payload per
	// reservation detail, for backends that post charges per folio.
	GroupByReservationDetail Grouping = "reservation_detail"
)

// ParseGrouping maps a request value onto a Grouping, defaulting to GroupNone.
func ParseGrouping(value string) Grouping {
	if Grouping(value) == GroupByReservationDetail {
		return GroupByReservationDetail
	}
	return GroupNone
}

// JournalLine is one double-entry GL line of a night-audit payload.
// Amounts are 2-decimal floats; the ledger converts to cents on posting.
type JournalLine struct {
	AccountID           snowflake.ID  `json:"accountId"`
	Debit               float64       `json:"debit"`
	Credit              float64       `json:"credit"`
	DebitCurr           float64       `json:"debitCurr"`
	CreditCurr          float64       `json:"creditCurr"`
	Memo                string        `json:"memo"`
	ReservationDetailID *snowflake.ID `json:"reservationDetailId,omitempty"`
}

// Payload is one postable journal, shaped after the downstream GL
// transaction contract (glAccTransactions array plus header fields).
type Payload struct {
	TranDate            time.Time     `json:"tranDate"`
	TranTypeID          int           `json:"tranTypeId"`
	IsGuestLedger       bool          `json:"isGuestLedger"`
	CurrencyCode        string        `json:"currencyCode"`
	Memo                string        `json:"memo"`
	RefNo               string        `json:"refNo"`
	Remarks             string        `json:"remarks"`
	ReservationDetailID *snowflake.ID `json:"reservationDetailId,omitempty"`
	TranValue           float64       `json:"tranValue"`
	GLAccTransactions   []JournalLine `json:"glAccTransactions"`
}

// TotalDebits sums the payload's debit side.
func (p Payload) TotalDebits() float64 {
	var total float64
	for _, line := range p.GLAccTransactions {
		total += line.Debit
	}
	return total
}

// TotalCredits sums the payload's credit side.
func (p Payload) TotalCredits() float64 {
	var total float64
	for _, line := range p.GLAccTransactions {
		total += line.Credit
	}
	return total
}
