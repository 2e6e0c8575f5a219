package mapper

import "strings"

// Fixed classification constants for the accounting export.
const (
	ExpenseRubro        = 113
	ExpenseSubrubro     = 1
	ReimbursementRubro  = 412
	TransactionTypeCaja = "C"
	OriginCodeExpensas  = "E"
	voucherWidth        = 8
)

// ExpenseRow is one gastos line in the import layout of the administration
// system. Field order follows the workbook columns.
type ExpenseRow struct {
	Edificio              string `csv:"edificio"`
	Fecha                 string `csv:"fecha"`
	Unidad                string `csv:"unidad"`
	Identificador         string `csv:"identificador"`
	Importe               int64  `csv:"importe"`
	Moneda                string `csv:"moneda"`
	Descripcion           string `csv:"descripcion"`
	Observaciones         string `csv:"observaciones"`
	Rubro                 int    `csv:"rubro"`
	Subrubro              int    `csv:"subrubro"`
	Tipo                  string `csv:"tipo"`
	IVA                   string `csv:"iva"`
	Comprobante           string `csv:"comprobante"`
	Cotizacion            string `csv:"cotizacion"`
	Codigo                string `csv:"codigo"`
	ConceptoCtaParticular string `csv:"concepto_cta_particular"`
	Clase                 string `csv:"clase"`
	Empresa               string `csv:"empresa"`
}

// ReimbursementRow is one reintegros line. The unit columns stay empty on
// purpose; the unit survives as a suffix inside Descripcion.
type ReimbursementRow struct {
	Edificio              string `csv:"edificio"`
	Fecha                 string `csv:"fecha"`
	Unidad                string `csv:"unidad"`
	Identificador         string `csv:"identificador"`
	Importe               int64  `csv:"importe"`
	Moneda                string `csv:"moneda"`
	Descripcion           string `csv:"descripcion"`
	Observaciones         string `csv:"observaciones"`
	Rubro                 int    `csv:"rubro"`
	Subrubro              int    `csv:"subrubro"`
	Tipo                  string `csv:"tipo"`
	IVA                   string `csv:"iva"`
	Comprobante           string `csv:"comprobante"`
	Cotizacion            string `csv:"cotizacion"`
	Codigo                string `csv:"codigo"`
	ConceptoCtaParticular string `csv:"concepto_cta_particular"`
	Clase                 string `csv:"clase"`
	Empresa               string `csv:"empresa"`
}

// Voucher left-pads an order number with zeros to the comprobante width.
// Numbers already at or past the width pass through untouched.
func Voucher(orderNumber string) string {
	if len(orderNumber) >= voucherWidth {
		return orderNumber
	}
	return strings.Repeat("0", voucherWidth-len(orderNumber)) + orderNumber
}
