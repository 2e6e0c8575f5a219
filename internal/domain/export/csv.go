package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/greenpark-export/internal/domain/mapper"
)

// ExpenseCSV renders gastos rows as CSV with a header line, in the same
// column order as the workbook.
func ExpenseCSV(rows []mapper.ExpenseRow) ([]byte, error) {
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshaling gastos csv: %w", err)
	}
	return out, nil
}

// ReimbursementCSV renders reintegros rows as CSV. Unlike the workbook the
// struct is written as-is; reimbursement rows already carry blank unit
// columns from the mapper.
func ReimbursementCSV(rows []mapper.ReimbursementRow) ([]byte, error) {
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshaling reintegros csv: %w", err)
	}
	return out, nil
}
