// Package money provides decimal-safe parsing and rounding for the monetary
// values printed on service-order documents, plus display formatting for
// summaries. Amounts are carried as shopspring decimals; rounding is
// half-up, matching how the source documents round.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a plain decimal amount as printed in the document body,
// e.g. "1704.00". The source text always carries exactly two fraction digits,
// but the parser is tolerant of any valid decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParseGrouped parses a thousands-grouped amount as printed on total lines,
// e.g. "2,568.00" or "12,345,678.90".
func ParseGrouped(s string) (decimal.Decimal, error) {
	return ParseAmount(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// RoundCents rounds to two decimal places, half up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WholeUnits rounds to the nearest whole currency unit, half up. The
// accounting export carries no cents.
func WholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Sum adds a series of decimals.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Display renders an amount with its currency symbol for human-facing
// summaries, e.g. Display(d, "UYU") -> "$U2,568.00".
func Display(d decimal.Decimal, currencyCode string) string {
	cur := gomoney.GetCurrency(currencyCode)
	if cur == nil {
		return fmt.Sprintf("%s %s", currencyCode, RoundCents(d).StringFixed(2))
	}
	cents := d.Mul(decimal.New(1, int32(cur.Fraction))).Round(0).IntPart()
	return gomoney.New(cents, currencyCode).Display()
}
