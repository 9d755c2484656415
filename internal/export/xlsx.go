// Package export writes assembled schedules to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ironsheep/schedule-ocr-mcp/internal/pipeline"
)

// SheetName is the name of the worksheet holding the schedule.
const SheetName = "Schedule"

// ErrFailedResult is returned when asked to export an error result.
var ErrFailedResult = errors.New("export: result is an error")

var header = []any{"#", "Text", "X", "Y", "Width", "Height"}

// WriteXLSX writes result as a workbook with a single Schedule sheet: a
// header row, then one row per text block in result order. A result with
// no blocks produces a header-only sheet.
func WriteXLSX(w io.Writer, result pipeline.Result) error {
	if result.Failed() {
		return fmt.Errorf("%w: %s", ErrFailedResult, result.Error)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return fmt.Errorf("sizing text column: %w", err)
	}

	for i, block := range result.Schedule {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		p := block.Position
		row := []any{i + 1, block.Text, p.X, p.Y, p.Width, p.Height}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes result to the file at path, replacing any existing file.
func SaveXLSX(path string, result pipeline.Result) error {
	if result.Failed() {
		return fmt.Errorf("%w: %s", ErrFailedResult, result.Error)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteXLSX(out, result); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
