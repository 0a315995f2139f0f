package domain

import "math"

// ValidateBalanced enforces the double-entry invariant: at least two lines,
// non-negative amounts, and equal debit and credit totals in cents.
func ValidateBalanced(lines []GLTransactionLine) error {
	if len(lines) < 2 {
		return ErrInvalidEntryLines
	}

	var debits, credits int64
	for _, line := range lines {
		if line.Amount < 0 {
			return ErrInvalidLineAmount
		}
		switch line.Direction {
		case GLEntryDirectionDebit:
			debits += line.Amount
		case GLEntryDirectionCredit:
			credits += line.Amount
		default:
			return ErrInvalidLineDirection
		}
	}

	if debits != credits {
		return ErrEntryNotBalanced
	}
	return nil
}

// ToCents converts a 2-decimal monetary amount to integer cents. Builder
// output is already rounded to 2 decimals, so this is a safe boundary cast.
func ToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// FromCents converts integer cents back to a float amount for responses.
func FromCents(amount int64) float64 {
	return float64(amount) / 100
}
