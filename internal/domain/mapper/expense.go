package mapper

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder"
	"github.com/FACorreiaa/greenpark-export/pkg/money"
)

// ExpenseRows maps a work order to its gastos rows, one per item in item
// order. A work order without items yields exactly one synthetic row built
// from the header and totals so the service never exports an empty ledger.
func ExpenseRows(order *workorder.WorkOrder) []ExpenseRow {
	h := order.Header
	building := BuildingCode(h.Complex, h.Identifier)
	voucher := Voucher(h.OrderNumber)

	if len(order.Items) == 0 {
		return []ExpenseRow{{
			Edificio:      building,
			Unidad:        h.Unit,
			Identificador: h.Identifier,
			Importe:       money.WholeUnits(order.Totals.Amount),
			Moneda:        CurrencyLetter(order.Totals.Currency),
			Descripcion:   strings.ToUpper(h.Observation),
			Rubro:         ExpenseRubro,
			Subrubro:      ExpenseSubrubro,
			Tipo:          TransactionTypeCaja,
			Comprobante:   voucher,
			Codigo:        OriginCodeExpensas,
		}}
	}

	rows := make([]ExpenseRow, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, ExpenseRow{
			Edificio:      building,
			Unidad:        h.Unit,
			Identificador: h.Identifier,
			Importe:       money.WholeUnits(item.Amount),
			Moneda:        CurrencyLetter(h.Currency),
			Descripcion:   strings.ToUpper(fmt.Sprintf("%s %s", item.Quantity, item.Description)),
			Rubro:         ExpenseRubro,
			Subrubro:      ExpenseSubrubro,
			Tipo:          TransactionTypeCaja,
			Comprobante:   voucher,
			Codigo:        OriginCodeExpensas,
		})
	}
	return rows
}
