// Package export renders the sales pipeline as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agency/internal/core"
	"agency/internal/sheets"
)

const (
	SheetName   = "Sales"
	ColumnWidth = 18
)

// WriteSales writes the ledger columns, one row per sale, followed by a
// totals row summing the Closed Won amounts.
func WriteSales(w io.Writer, sales []core.Sale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(sheets.Header))
	for i, h := range sheets.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, s := range sales {
		row := sheets.Row(s)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locate sale %d: %w", s.ID, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write sale %d: %w", s.ID, err)
		}
	}

	last := len(sales) + 1
	total := last + 1
	label, err := excelize.CoordinatesToCellName(5, total)
	if err != nil {
		return fmt.Errorf("locate total: %w", err)
	}
	sum, err := excelize.CoordinatesToCellName(6, total)
	if err != nil {
		return fmt.Errorf("locate total: %w", err)
	}
	if err := f.SetCellValue(SheetName, label, "Closed Won"); err != nil {
		return fmt.Errorf("write total label: %w", err)
	}
	formula := "0"
	if len(sales) > 0 {
		formula = fmt.Sprintf(`SUMIF(E2:E%d,"%s",F2:F%d)`, last, core.SaleClosedWon, last)
	}
	if err := f.SetCellFormula(SheetName, sum, formula); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if len(sales) > 0 {
		lastAmount, err := excelize.CoordinatesToCellName(6, last)
		if err != nil {
			return fmt.Errorf("locate amounts: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "F2", lastAmount, money); err != nil {
			return fmt.Errorf("style amounts: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetName, label, label, bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}
	if err := f.SetCellStyle(SheetName, sum, sum, boldMoney); err != nil {
		return fmt.Errorf("style total: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "D", ColumnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
