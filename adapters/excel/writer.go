package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"studysize/domain/table"
)

// SheetName is the worksheet sweep tables are written to and grids are read from.
const SheetName = "Sheet1"

// XLSXWriter writes a sweep table as a single-sheet workbook
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSX table writer
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (w *XLSXWriter) Format() string { return "xlsx" }

func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write renders the header row in bold followed by one row per combination.
func (w *XLSXWriter) Write(out io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure Sheet1 exists and is active.
	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx == -1 {
		idx, err := f.NewSheet(SheetName)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	// Header row
	for i, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	if len(t.Columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
