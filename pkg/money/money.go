// Package money implements the storefront's display-currency rules. Prices
// move through the system as float64 amounts; every derived total is rounded
// to the cent before it is stored or shown.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// CurrencyCode is the single display currency of the storefront.
const CurrencyCode = "XCG"

// Round2 rounds an amount to the nearest cent, half away from zero.
// Applying it to sums of already-rounded values is stable: Round2 of an
// exact-cent amount returns the amount unchanged, so repeated rounding
// cannot drift.
func Round2(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// Format renders an amount as "<CODE> <amount>" with exactly two decimals.
// Non-finite input formats as zero rather than failing.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return fmt.Sprintf("%s %s", CurrencyCode, decimal.NewFromFloat(amount).StringFixed(2))
}
