// Package export renders mapped rows into the spreadsheet and CSV artifacts
// the administration system imports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/greenpark-export/internal/domain/mapper"
)

// SheetGastos and SheetReintegros name the single sheet of each workbook.
const (
	SheetGastos     = "Gastos"
	SheetReintegros = "Reintegros"
)

const headerRowHeight = 50

type column struct {
	header string
	width  float64
}

// columns reproduce the import template of the administration system; the
// parenthesized notes in the headers are part of that template.
var columns = []column{
	{"N° de edificio/empresa\n(caja/movimiento)", 22},
	{"Fecha", 12},
	{"Unidad", 10},
	{"Identificador", 14},
	{"Importe", 12},
	{"Moneda", 8},
	{"Descripción", 30},
	{"Observaciones\n(Máximo 20 caracteres\nnro del concepto mov)", 22},
	{"Rubro\n(rubro movimiento)", 10},
	{"Subrubro\n(subrubro movimiento)", 12},
	{"Tipo\n(\"C\" caja/ \"D\" diario)", 10},
	{"IVA\n(Codigo Iva)", 8},
	{"Comprobante\n(8 caracteres numéricos)", 14},
	{"Cotización\n(TC)", 10},
	{"Codigo\n(E = Expensas | P = Particular)", 12},
	{"Concepto de\nCta. Particular", 14},
	{"Clase", 8},
	{"Empresa", 10},
}

// ExpenseWorkbook serializes gastos rows into a one-sheet workbook.
func ExpenseWorkbook(rows []mapper.ExpenseRow) ([]byte, error) {
	cells := make([][]interface{}, len(rows))
	for i, r := range rows {
		cells[i] = []interface{}{
			r.Edificio, r.Fecha, r.Unidad, r.Identificador, r.Importe,
			r.Moneda, r.Descripcion, r.Observaciones, r.Rubro, r.Subrubro,
			r.Tipo, r.IVA, r.Comprobante, r.Cotizacion, r.Codigo,
			r.ConceptoCtaParticular, r.Clase, r.Empresa,
		}
	}
	return writeWorkbook(SheetGastos, cells)
}

// ReimbursementWorkbook serializes reintegros rows into a one-sheet workbook.
// The unit columns are written blank regardless of the row values; the unit
// lives in the description on this sheet.
func ReimbursementWorkbook(rows []mapper.ReimbursementRow) ([]byte, error) {
	cells := make([][]interface{}, len(rows))
	for i, r := range rows {
		cells[i] = []interface{}{
			r.Edificio, r.Fecha, "", "", r.Importe,
			r.Moneda, r.Descripcion, r.Observaciones, r.Rubro, r.Subrubro,
			r.Tipo, r.IVA, r.Comprobante, r.Cotizacion, r.Codigo,
			r.ConceptoCtaParticular, r.Clase, r.Empresa,
		}
	}
	return writeWorkbook(SheetReintegros, cells)
}

func writeWorkbook(sheet string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet %s: %w", sheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 9},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2EFDA"}},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("building header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("building cell style: %w", err)
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return nil, fmt.Errorf("sizing column %s: %w", name, err)
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return nil, fmt.Errorf("writing header %s: %w", cell, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("styling header row: %w", err)
	}
	if err := f.SetRowHeight(sheet, 1, headerRowHeight); err != nil {
		return nil, fmt.Errorf("sizing header row: %w", err)
	}

	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, i+2)
		last, _ := excelize.CoordinatesToCellName(len(columns), i+2)
		if err := f.SetCellStyle(sheet, first, last, cellStyle); err != nil {
			return nil, fmt.Errorf("styling row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func thinBorders() []excelize.Border {
	sides := []string{"top", "left", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Style: 1}
	}
	return borders
}
