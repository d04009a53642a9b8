package entry

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmountInputLength caps the raw amount text accepted from the input field.
const MaxAmountInputLength = 15

// NormalizeAmount turns raw amount keystrokes into a two-decimal amount string.
//
// Every non-digit is dropped and the remaining digits are read as an integer
// count of minor units (cents), so "1250" and "12,50" both become "12.50".
// Input without any digit yields "", the cleared state. Length limits are
// the caller's concern.
func NormalizeAmount(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return ""
	}

	minor, err := decimal.NewFromString(digits)
	if err != nil {
		return ""
	}
	return minor.Shift(-2).StringFixed(2)
}

// parseAmount reads a submitted amount and rounds it to cents.
func parseAmount(amount string) (decimal.Decimal, bool) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	value = value.Round(2)
	if !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}
