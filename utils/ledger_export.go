package utils

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hotel-console/models"
)

const ledgerSheet = "Ledger"

var ledgerHeaders = []string{"ID", "Date", "Type", "Category", "Amount", "Payment Method", "Description", "Reference"}

// WriteLedgerWorkbook renders transactions as a single-sheet xlsx workbook.
func WriteLedgerWorkbook(w io.Writer, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return err
	}

	for i, header := range ledgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ledgerSheet, cell, header); err != nil {
			return err
		}
	}

	for i, t := range txs {
		row := i + 2
		ref := ""
		if t.ReferenceID != nil {
			ref = fmt.Sprintf("%d", *t.ReferenceID)
		}
		values := []any{
			t.ID,
			t.TransactionDate.String(),
			string(t.Type),
			t.Category.Label(),
			t.Amount.InexactFloat64(),
			string(t.PaymentMethod),
			t.Description,
			ref,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
