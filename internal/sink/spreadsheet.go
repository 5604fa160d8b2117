package sink

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/logger"
)

const defaultSheet = "Sheet1"

// Spreadsheet writes an ExportTable as a single-sheet .xlsx workbook.
type Spreadsheet struct {
	sheet string
}

// NewSpreadsheet returns a writer that names its only sheet sheetName.
func NewSpreadsheet(sheetName string) *Spreadsheet {
	return &Spreadsheet{sheet: sheetName}
}

// WriteTable writes table to path, replacing any existing file.
//
// Layout:
//   - Row 1: bold column headers.
//   - Rows 2..n+1: one row per record; numbers as numeric cells, nulls as empty cells.
func (s *Spreadsheet) WriteTable(table models.ExportTable, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := s.fill(f, table); err != nil {
		return err
	}

	if err := writeFileAtomic(path, func(w io.Writer) error { return f.Write(w) }); err != nil {
		return err
	}

	logger.L().Info().Str("path", path).Int("rows", len(table.Rows)).Msg("spreadsheet written")
	return nil
}

func (s *Spreadsheet) fill(f *excelize.File, table models.ExportTable) error {
	if err := f.SetSheetName(defaultSheet, s.sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(max(len(table.Columns), 1))
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(s.sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetColWidth(s.sheet, "A", lastCol, 22); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		cells := row.Cells()
		if err := f.SetSheetRow(s.sheet, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return nil
}
