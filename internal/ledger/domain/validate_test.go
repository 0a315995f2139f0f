package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBalanced(t *testing.T) {
	lines := []GLTransactionLine{
		{AccountID: 1, Direction: GLEntryDirectionDebit, Amount: 12980},
		{AccountID: 2, Direction: GLEntryDirectionCredit, Amount: 10000},
		{AccountID: 3, Direction: GLEntryDirectionCredit, Amount: 2980},
	}
	assert.NoError(t, ValidateBalanced(lines))
}

func TestValidateBalancedRejectsImbalance(t *testing.T) {
	lines := []GLTransactionLine{
		{AccountID: 1, Direction: GLEntryDirectionDebit, Amount: 100},
		{AccountID: 2, Direction: GLEntryDirectionCredit, Amount: 99},
	}
	assert.ErrorIs(t, ValidateBalanced(lines), ErrEntryNotBalanced)
}

func TestValidateBalancedRejectsBadInput(t *testing.T) {
	assert.ErrorIs(t, ValidateBalanced(nil), ErrInvalidEntryLines)

	single := []GLTransactionLine{{AccountID: 1, Direction: GLEntryDirectionDebit, Amount: 1}}
	assert.ErrorIs(t, ValidateBalanced(single), ErrInvalidEntryLines)

	negative := []GLTransactionLine{
		{AccountID: 1, Direction: GLEntryDirectionDebit, Amount: -1},
		{AccountID: 2, Direction: GLEntryDirectionCredit, Amount: -1},
	}
	assert.ErrorIs(t, ValidateBalanced(negative), ErrInvalidLineAmount)

	unknown := []GLTransactionLine{
		{AccountID: 1, Direction: "sideways", Amount: 1},
		{AccountID: 2, Direction: GLEntryDirectionCredit, Amount: 1},
	}
	assert.ErrorIs(t, ValidateBalanced(unknown), ErrInvalidLineDirection)
}

func TestToCentsRoundsHalfUp(t *testing.T) {
	assert.Equal(t, int64(12980), ToCents(129.80))
	assert.Equal(t, int64(1), ToCents(0.005))
	assert.Equal(t, int64(0), ToCents(0))
	assert.InDelta(t, 129.80, FromCents(12980), 1e-9)
}
