package mapper

import "github.com/FACorreiaa/greenpark-export/internal/domain/workorder"

// CurrencyLetter maps a currency to the single-letter moneda column: "U" for
// dollars, "P" (pesos) for everything else.
func CurrencyLetter(c workorder.Currency) string {
	if c == workorder.CurrencyUSD {
		return "U"
	}
	return "P"
}
