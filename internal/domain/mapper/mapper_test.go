package mapper

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/greenpark-export/internal/domain/catalog"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder"
)

func TestBuildingCode(t *testing.T) {
	for _, tc := range []struct {
		complexName string
		identifier  string
		want        string
	}{
		{"Green Park II", "P", "4"},
		{"Green Park II", "D", "1"},
		{"Green Park I", "P", "1"},
		{"Green Park 2", "p", "4"},
		{"GREEN PARK II", "P", "4"},
		{"GreenPark2", "P", "4"},
		{"Green Park II", "", "1"},
		{"", "P", "1"},
	} {
		t.Run(tc.complexName+"/"+tc.identifier, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildingCode(tc.complexName, tc.identifier))
		})
	}
}

func TestCurrencyLetter(t *testing.T) {
	assert.Equal(t, "U", CurrencyLetter(workorder.CurrencyUSD))
	assert.Equal(t, "P", CurrencyLetter(workorder.CurrencyUYU))
	assert.Equal(t, "P", CurrencyLetter(workorder.Currency("EUR")))
}

func TestVoucher(t *testing.T) {
	assert.Equal(t, "00053482", Voucher("53482"))
	assert.Equal(t, "00000001", Voucher("1"))
	assert.Equal(t, "12345678", Voucher("12345678"))
	assert.Equal(t, "123456789", Voucher("123456789"), "wider numbers are not truncated")
	assert.Equal(t, "00000000", Voucher(""))
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func sampleOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()
	return &workorder.WorkOrder{
		Header: workorder.Header{
			DocumentNumber: "4323",
			OrderNumber:    "53482",
			Currency:       workorder.CurrencyUYU,
			Complex:        "Green Park II",
			Identifier:     "P",
			Unit:           "013",
			Client:         "GRAFF, Nestor",
			Date:           "2026-02-18",
			Observation:    "canilla pileta baño pierde",
		},
		Items: []workorder.Item{
			{
				Code:        "1216",
				Description: "Monocomando para bacha",
				Quantity:    mustDecimal(t, "1.00"),
				UnitPrice:   mustDecimal(t, "1704.00"),
				Amount:      mustDecimal(t, "1704.00"),
			},
			{
				Code:        "357",
				Description: "Colilla M-H",
				Quantity:    mustDecimal(t, "2.00"),
				UnitPrice:   mustDecimal(t, "132.25"),
				Amount:      mustDecimal(t, "264.50"),
			},
		},
		Totals: workorder.Totals{
			Amount:   mustDecimal(t, "1968.50"),
			Currency: workorder.CurrencyUYU,
		},
	}
}

func TestExpenseRows(t *testing.T) {
	rows := ExpenseRows(sampleOrder(t))
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "4", first.Edificio)
	assert.Equal(t, "013", first.Unidad)
	assert.Equal(t, "P", first.Identificador)
	assert.Equal(t, int64(1704), first.Importe)
	assert.Equal(t, "P", first.Moneda)
	assert.Equal(t, "1 MONOCOMANDO PARA BACHA", first.Descripcion)
	assert.Equal(t, ExpenseRubro, first.Rubro)
	assert.Equal(t, ExpenseSubrubro, first.Subrubro)
	assert.Equal(t, "C", first.Tipo)
	assert.Equal(t, "00053482", first.Comprobante)
	assert.Equal(t, "E", first.Codigo)
	assert.Empty(t, first.Fecha, "expense rows carry no date column")

	second := rows[1]
	assert.Equal(t, int64(265), second.Importe, "half rounds away from zero")
	assert.Equal(t, "2 COLILLA M-H", second.Descripcion)
}

func TestExpenseRows_EmptyItemsFallback(t *testing.T) {
	order := sampleOrder(t)
	order.Items = nil

	rows := ExpenseRows(order)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(1969), row.Importe)
	assert.Equal(t, strings.ToUpper("canilla pileta baño pierde"), row.Descripcion)
	assert.Equal(t, "00053482", row.Comprobante)
	assert.Equal(t, "013", row.Unidad)
}

func testCatalog(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.Load(strings.NewReader("header\nmonocomando\t31\ncolilla\t14\n"))
	require.NoError(t, err)
	return idx
}

func TestReimbursementRows(t *testing.T) {
	rows, misses := ReimbursementRows(sampleOrder(t), testCatalog(t))
	require.Len(t, rows, 2)
	assert.Empty(t, misses)

	first := rows[0]
	assert.Equal(t, "4", first.Edificio)
	assert.Equal(t, "2026-02-18", first.Fecha)
	assert.Empty(t, first.Unidad, "unit columns stay blank on reintegros")
	assert.Empty(t, first.Identificador)
	assert.Equal(t, int64(1704), first.Importe)
	assert.Equal(t, "1 Monocomando para bacha P013", first.Descripcion)
	assert.Equal(t, ReimbursementRubro, first.Rubro)
	assert.Equal(t, 31, first.Subrubro)
	assert.Equal(t, "00053482", first.Comprobante)

	assert.Equal(t, 14, rows[1].Subrubro)
	assert.Equal(t, "2 Colilla M-H P013", rows[1].Descripcion)
}

func TestReimbursementRows_CatalogMiss(t *testing.T) {
	order := sampleOrder(t)
	order.Items = order.Items[:1]
	order.Items[0].Description = "Zapato de goma"

	rows, misses := ReimbursementRows(order, testCatalog(t))
	require.Len(t, rows, 1)
	assert.Equal(t, catalog.DefaultCode, rows[0].Subrubro)

	require.Len(t, misses, 1)
	assert.Equal(t, "Zapato de goma", misses[0].Description)
}

func TestReimbursementRows_EmptyItemsFallback(t *testing.T) {
	order := sampleOrder(t)
	order.Items = nil

	rows, misses := ReimbursementRows(order, testCatalog(t))
	require.Len(t, rows, 1)
	assert.Empty(t, misses)

	row := rows[0]
	assert.Equal(t, int64(1969), row.Importe)
	assert.Equal(t, "canilla pileta baño pierde P013", row.Descripcion)
	assert.Equal(t, catalog.DefaultCode, row.Subrubro)
}

func TestReimbursementRows_FallbackTrimsEmptyObservation(t *testing.T) {
	order := sampleOrder(t)
	order.Items = nil
	order.Header.Observation = ""

	rows, _ := ReimbursementRows(order, testCatalog(t))
	require.Len(t, rows, 1)
	assert.Equal(t, "P013", rows[0].Descripcion)
}
