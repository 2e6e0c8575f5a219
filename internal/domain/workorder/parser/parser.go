// Package parser turns the raw text extracted from a service-order PDF into a
// structured workorder.WorkOrder. The input is an ordered sequence of text
// lines with no layout metadata: fields arrive concatenated without
// separators ("4323UYU", "53482Green Park ID013"), the item table's numeric
// triplets run together ("1.001704.001704.00"), and item boundaries have to
// be inferred positionally.
//
// Every header field is extracted by an independent, side-effect-free matcher
// tried against the line sequence; a field that cannot be located degrades to
// its zero value and is flagged in the FieldReport. Only structurally empty
// input fails the parse.
package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder"
	"github.com/FACorreiaa/greenpark-export/pkg/money"
)

var (
	// "4323UYU" -> document number + currency, split at the digit/letter boundary.
	docNumberRe = regexp.MustCompile(`^(\d+)(UYU|USD)$`)

	// "53482Green Park ID013" -> order number, complex name, compound unit token.
	orderLineRe   = regexp.MustCompile(`^(\d+)(.*?)([A-Z]\d{2,4})$`)
	complexMarkRe = regexp.MustCompile(`(?i)Green\s*Park`)

	isoDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

	obsSectionRe = regexp.MustCompile(`(?i)DATOS\s*ORDEN\s*DE\s*SERVICIO`)

	// Item table boundaries. The header row arrives with columns mashed
	// together ("IDDescripciónFun.CantidadPrecioImporte") and is matched
	// tolerantly; the table ends at the payment or total section.
	tableStartRe = regexp.MustCompile(`(?i)^ID.*Descripci[oó]n.*Importe$|^IDDescripci[oó]n`)
	tableEndRe   = regexp.MustCompile(`(?i)^FORMA\s*DE\s*PAGO|^IMPORTE\s*TOTAL`)

	itemCodeRe     = regexp.MustCompile(`^\d{2,5}$`)
	numbersStartRe = regexp.MustCompile(`^\d+\.\d{2}`)

	// Three two-fraction-digit decimals concatenated with no separator:
	// quantity, unit price, line amount.
	numbersJoinedRe = regexp.MustCompile(`^(\d+\.\d{2})(\d+\.\d{2})(\d+\.\d{2})$`)
	numbersSpacedRe = regexp.MustCompile(`(\d+\.\d{2})\s+(\d+\.\d{2})\s+(\d+\.\d{2})`)

	// "UYU2,568.00" on the total line.
	totalLineRe = regexp.MustCompile(`(?:UYU|USD)([\d,]+\.\d{2})`)

	// "Michel Rodríguez" style technician names; marker lines that would
	// otherwise satisfy the pattern are excluded.
	technicianRe  = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+$`)
	nonNameMarkRe = regexp.MustCompile(`(?i)^(Green|FORMA|IMPORTE|DATOS|COBRANZA)`)
)

// clientMarker is matched as a whole line; the client name is on the next line.
const clientMarker = "CLIENTE"

// Result bundles the structured record with the per-field presence report.
type Result struct {
	Order  *workorder.WorkOrder
	Fields workorder.FieldReport
}

// Parse splits raw extracted text into lines and builds the structured
// record. It returns workorder.ErrMalformedDocument only when the text holds
// no non-blank lines; any individual field that cannot be located is left at
// its zero value and flagged in the report.
func Parse(text string) (*Result, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, workorder.ErrMalformedDocument
	}

	header, fields := extractHeader(lines)
	items := extractItems(lines)

	var total decimal.Decimal
	if len(items) > 0 {
		amounts := make([]decimal.Decimal, len(items))
		for i, item := range items {
			amounts[i] = item.Amount
		}
		total = money.RoundCents(money.Sum(amounts...))
	} else {
		total = extractTotal(lines)
	}

	return &Result{
		Order: &workorder.WorkOrder{
			Header: header,
			Items:  items,
			Totals: workorder.Totals{Amount: total, Currency: header.Currency},
		},
		Fields: fields,
	}, nil
}

// splitLines trims every line and drops blanks, mirroring what the upstream
// text extraction produces.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func extractHeader(lines []string) (workorder.Header, workorder.FieldReport) {
	var h workorder.Header
	var f workorder.FieldReport

	// Currency defaults to UYU when the number/currency line is absent, so
	// downstream mapping always has a resolvable currency.
	h.Currency = workorder.CurrencyUYU

	if num, cur, ok := matchDocumentNumber(lines); ok {
		h.DocumentNumber = num
		h.Currency = cur
		f.DocumentNumber = true
	}
	if os, complexName, ident, unit, ok := matchOrderLine(lines); ok {
		h.OrderNumber = os
		h.Complex = complexName
		h.Identifier = ident
		h.Unit = unit
		f.OrderNumber = true
		f.Complex = true
		f.Unit = true
	}
	if client, ok := matchAfterMarker(lines, clientMarker); ok {
		h.Client = client
		f.Client = true
	}
	if date, ok := matchISODate(lines); ok {
		h.Date = date
		f.Date = true
	}
	if obs, ok := matchObservation(lines); ok {
		h.Observation = obs
		f.Observation = true
	}
	if tech, ok := matchTechnician(lines); ok {
		h.Technician = tech
		f.Technician = true
	}

	return h, f
}

// matchDocumentNumber finds the first "<digits><currency>" line, e.g. "4323UYU".
func matchDocumentNumber(lines []string) (string, workorder.Currency, bool) {
	for _, line := range lines {
		if m := docNumberRe.FindStringSubmatch(line); m != nil {
			return m[1], workorder.ParseCurrency(m[2]), true
		}
	}
	return "", "", false
}

// matchOrderLine finds the compound O.S. line, e.g. "53482Green Park ID013":
// order number prefix, complex name in the middle, and a trailing
// letter+digits unit token that splits into identifier and unit number.
// Leading zeros in the unit number are preserved.
func matchOrderLine(lines []string) (os, complexName, ident, unit string, ok bool) {
	for _, line := range lines {
		m := orderLineRe.FindStringSubmatch(line)
		if m == nil || !complexMarkRe.MatchString(m[2]) {
			continue
		}
		token := m[3]
		return m[1], strings.TrimSpace(m[2]), token[:1], token[1:], true
	}
	return "", "", "", "", false
}

// matchAfterMarker returns the line following an exact marker line.
func matchAfterMarker(lines []string, marker string) (string, bool) {
	for i, line := range lines {
		if line == marker && i+1 < len(lines) {
			return strings.TrimSpace(lines[i+1]), true
		}
	}
	return "", false
}

func matchISODate(lines []string) (string, bool) {
	for _, line := range lines {
		if m := isoDateRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// matchObservation takes the line after the "DATOS ORDEN DE SERVICIO" section
// marker and keeps the segment before the first pipe, e.g.
// "14/02/2026 - canilla pileta baño pierde | Generado: ..." -> the left part.
func matchObservation(lines []string) (string, bool) {
	for i, line := range lines {
		if obsSectionRe.MatchString(line) && i+1 < len(lines) {
			obs, _, _ := strings.Cut(lines[i+1], "|")
			return strings.TrimSpace(obs), true
		}
	}
	return "", false
}

// matchTechnician picks the first "Firstname Lastname" line that is not a
// known section marker. The name also appears inside item blocks, so the
// first hit is usually the technician who worked the order.
func matchTechnician(lines []string) (string, bool) {
	for _, line := range lines {
		if technicianRe.MatchString(line) && !nonNameMarkRe.MatchString(line) {
			return line, true
		}
	}
	return "", false
}

// extractItems scans the slice bounded by the table header and the payment or
// total marker. A candidate item starts at a line that is purely a 2-5 digit
// code; the next line is the description; the numbers line is then sought up
// to two lines ahead, allowing for an intervening technician-name line.
// Candidates without a numbers line within the window are discarded and the
// cursor advances by one, so a stray numeric line never aborts the table.
func extractItems(lines []string) []workorder.Item {
	var items []workorder.Item

	start := -1
	for i, line := range lines {
		if tableStartRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return items
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if tableEndRe.MatchString(lines[i]) {
			end = i
			break
		}
	}

	table := lines[start:end]

	i := 0
	for i < len(table) {
		if !itemCodeRe.MatchString(table[i]) {
			i++
			continue
		}
		code := table[i]

		if i+1 >= len(table) {
			break
		}
		description := strings.TrimSpace(table[i+1])

		numbersLine := ""
		consumed := 2
		for j := i + 2; j < i+4 && j < len(table); j++ {
			if numbersStartRe.MatchString(table[j]) {
				numbersLine = table[j]
				consumed = j - i + 1
				break
			}
		}

		if numbersLine == "" {
			i++
			continue
		}

		if qty, price, amount, ok := decodeNumbersLine(numbersLine); ok {
			items = append(items, workorder.Item{
				Code:        code,
				Description: description,
				Quantity:    qty,
				UnitPrice:   price,
				Amount:      amount,
			})
		}
		i += consumed
	}

	return items
}

// decodeNumbersLine splits a triplet line into quantity, unit price and line
// amount. The concatenated form ("1.001704.001704.00") is tried first, then
// the space-separated fallback ("2.00 132.00 264.00").
func decodeNumbersLine(line string) (qty, price, amount decimal.Decimal, ok bool) {
	m := numbersJoinedRe.FindStringSubmatch(line)
	if m == nil {
		m = numbersSpacedRe.FindStringSubmatch(line)
	}
	if m == nil {
		return qty, price, amount, false
	}

	var err error
	if qty, err = money.ParseAmount(m[1]); err != nil {
		return qty, price, amount, false
	}
	if price, err = money.ParseAmount(m[2]); err != nil {
		return qty, price, amount, false
	}
	if amount, err = money.ParseAmount(m[3]); err != nil {
		return qty, price, amount, false
	}
	return qty, price, amount, true
}

// extractTotal reads the grand total from a "UYU2,568.00" style line. It is
// only consulted when the item table yielded nothing; a document with neither
// items nor a total line totals zero.
func extractTotal(lines []string) decimal.Decimal {
	for _, line := range lines {
		if m := totalLineRe.FindStringSubmatch(line); m != nil {
			if d, err := money.ParseGrouped(m[1]); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
