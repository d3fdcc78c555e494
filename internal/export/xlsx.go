package export

import (
	"fmt"
	"math"

	"github.com/stwalsh4118/neowatch/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Close Approaches"

// WriteXLSX saves close approaches as a spreadsheet with one styled header
// row. Unknown numeric values leave their cells empty.
func WriteXLSX(path string, approaches []*models.CloseApproach) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for rowIdx, ca := range approaches {
		row := flatRow(ca)
		for colIdx, col := range columns {
			value := row[col]
			if num, ok := value.(float64); ok && math.IsNaN(num) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
			}
		}
	}

	for i := 1; i <= len(columns); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		if err := f.SetColWidth(sheetName, colName, colName, 22); err != nil {
			return fmt.Errorf("failed to size column %s: %w", colName, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
