package utils

import "github.com/shopspring/decimal"

// FormatCurrency renders a monetary amount with two decimal places using
// decimal arithmetic, so display values round half-up instead of inheriting
// float formatting quirks.
func FormatCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
