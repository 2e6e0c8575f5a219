// Package workorder defines the structured record produced by parsing a
// Green Park service-order document, plus the error taxonomy shared by the
// parsing and mapping layers.
package workorder

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the document currency. Service orders are issued in exactly
// two currencies.
type Currency string

const (
	CurrencyUYU Currency = "UYU"
	CurrencyUSD Currency = "USD"
)

// ErrMalformedDocument is returned when the extracted text contains no usable
// lines at all. Individual missing fields never produce this error; they
// degrade to zero values and are reported through FieldReport.
var ErrMalformedDocument = errors.New("malformed document: no usable text lines")

// Header holds the per-document fields extracted from the top and bottom
// sections of the service order.
type Header struct {
	DocumentNumber string // collection document number ("NÚMERO")
	OrderNumber    string // service-order number ("O.S.")
	Currency       Currency
	Complex        string // property complex name, e.g. "Green Park I"
	Identifier     string // unit-type letter split off the compound unit token
	Unit           string // unit number digits, leading zeros preserved
	Client         string
	Date           string // ISO date (YYYY-MM-DD)
	Technician     string // best-effort, informational only
	Observation    string // free text from the "DATOS ORDEN DE SERVICIO" section
}

// CompoundUnit reconstructs the original unit token, e.g. "D" + "013" -> "D013".
func (h Header) CompoundUnit() string {
	return h.Identifier + h.Unit
}

// Item is one line of the service-order item table. Amount is carried as
// printed in the document; it need not equal Quantity*UnitPrice exactly, and
// downstream code must not recompute it.
type Item struct {
	Code        string // 2-5 digit article code
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Totals holds the document grand total. When items exist the total is the
// recomputed sum of their amounts rounded to two decimals; otherwise it is
// taken from the document's total line.
type Totals struct {
	Amount   decimal.Decimal
	Currency Currency
}

// WorkOrder is the structured record for one parsed document. It is built
// once per parse and treated as read-only by the mappers.
type WorkOrder struct {
	Header Header
	Items  []Item
	Totals Totals
}

// FieldReport records which header fields were actually located in the text.
// A false flag means the field degraded to its zero value. Callers decide
// whether a missing critical field (e.g. the order number) deserves a warning.
type FieldReport struct {
	DocumentNumber bool
	OrderNumber    bool
	Complex        bool
	Unit           bool
	Client         bool
	Date           bool
	Technician     bool
	Observation    bool
}

// Missing lists the names of header fields that were not found, in a fixed
// order suitable for logging.
func (f FieldReport) Missing() []string {
	var missing []string
	for _, c := range []struct {
		name  string
		found bool
	}{
		{"document_number", f.DocumentNumber},
		{"order_number", f.OrderNumber},
		{"complex", f.Complex},
		{"unit", f.Unit},
		{"client", f.Client},
		{"date", f.Date},
		{"technician", f.Technician},
		{"observation", f.Observation},
	} {
		if !c.found {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// Complete reports whether every field, including the optional ones, was found.
func (f FieldReport) Complete() bool {
	return len(f.Missing()) == 0
}

// ParseCurrency maps a raw 3-letter code to a Currency, defaulting to UYU for
// anything unrecognized.
func ParseCurrency(code string) Currency {
	if strings.EqualFold(strings.TrimSpace(code), string(CurrencyUSD)) {
		return CurrencyUSD
	}
	return CurrencyUYU
}
