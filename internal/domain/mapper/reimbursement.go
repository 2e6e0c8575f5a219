package mapper

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/greenpark-export/internal/domain/catalog"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder"
	"github.com/FACorreiaa/greenpark-export/pkg/money"
)

// ReimbursementRows maps a work order to its reintegros rows. The subrubro
// comes from the catalog per item description; descriptions that fall through
// to the default code are returned as misses for the caller to report. The
// unit columns are intentionally blank, with the compound unit appended to
// the description instead.
func ReimbursementRows(order *workorder.WorkOrder, idx *catalog.Index) ([]ReimbursementRow, []catalog.Miss) {
	h := order.Header
	building := BuildingCode(h.Complex, h.Identifier)
	voucher := Voucher(h.OrderNumber)
	unitSuffix := h.CompoundUnit()

	if len(order.Items) == 0 {
		return []ReimbursementRow{{
			Edificio:    building,
			Fecha:       h.Date,
			Importe:     money.WholeUnits(order.Totals.Amount),
			Moneda:      CurrencyLetter(order.Totals.Currency),
			Descripcion: strings.TrimSpace(h.Observation + " " + unitSuffix),
			Rubro:       ReimbursementRubro,
			Subrubro:    catalog.DefaultCode,
			Tipo:        TransactionTypeCaja,
			Comprobante: voucher,
			Codigo:      OriginCodeExpensas,
		}}, nil
	}

	rows := make([]ReimbursementRow, 0, len(order.Items))
	var misses []catalog.Miss
	for _, item := range order.Items {
		subrubro, miss := idx.Resolve(item.Description)
		if miss != nil {
			misses = append(misses, *miss)
		}
		rows = append(rows, ReimbursementRow{
			Edificio:    building,
			Fecha:       h.Date,
			Importe:     money.WholeUnits(item.Amount),
			Moneda:      CurrencyLetter(h.Currency),
			Descripcion: fmt.Sprintf("%s %s %s", item.Quantity, item.Description, unitSuffix),
			Rubro:       ReimbursementRubro,
			Subrubro:    subrubro,
			Tipo:        TransactionTypeCaja,
			Comprobante: voucher,
			Codigo:      OriginCodeExpensas,
		})
	}
	return rows, misses
}
