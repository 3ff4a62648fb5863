package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// XLSX serializes rows through the schema into a spreadsheet: a bold-free
// header row followed by one row per input row, mirroring the CSV layout.
// Unlike CSV, cell values survive embedded commas and newlines intact.
func XLSX[T any](rows []T, schema Schema[T]) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, schema.Headers()); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, i+2, schema.Values(row)); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteXLSX serializes rows and saves the workbook at path
func WriteXLSX[T any](path string, rows []T, schema Schema[T]) error {
	f, err := XLSX(rows, schema)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
