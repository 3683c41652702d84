package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the XLSX review workbook.
const (
	SheetRun         = "Run"
	SheetSuggestions = "Suggestions"
	SheetUnassigned  = "Unassigned"
	SheetConflicts   = "Conflicts"
	SheetBOM         = "BOM"
)

var (
	unassignedColumns = []string{"Operation", "Field", "Value", "Work Center", "Reason"}
	conflictColumns   = []string{"Field", "Part Value", "Drawing Value", "Severity", "Recommendation"}
	bomColumns        = []string{"Item", "Part Number", "Description", "Quantity"}
)

// WriteXLSX writes the review sheet as a workbook with one tab per table.
func WriteXLSX(w io.Writer, sheet *ReviewSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRun); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetSuggestions, SheetUnassigned, SheetConflicts, SheetBOM} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRows(f, SheetRun, header, []string{"Field", "Value"}, runRows(sheet)); err != nil {
		return err
	}

	suggestions := make([][]string, 0, len(sheet.Suggestions))
	for i := range sheet.Suggestions {
		suggestions = append(suggestions, suggestionToRow(&sheet.Suggestions[i], sheet.Decisions))
	}
	if err := writeRows(f, SheetSuggestions, header, suggestionColumns, suggestions); err != nil {
		return err
	}

	unassigned := make([][]string, 0, len(sheet.Unassigned))
	for _, u := range sheet.Unassigned {
		unassigned = append(unassigned, []string{string(u.Operation), u.Field, u.Value, u.WorkCenter, u.Reason})
	}
	if err := writeRows(f, SheetUnassigned, header, unassignedColumns, unassigned); err != nil {
		return err
	}

	var conflicts, bom [][]string
	if sheet.Result != nil {
		for _, c := range sheet.Result.Conflicts {
			conflicts = append(conflicts, []string{string(c.Field), c.ModelValue, c.DrawingValue, string(c.Severity), c.Recommendation})
		}
		for _, b := range sheet.Result.BOM {
			bom = append(bom, []string{b.ItemNumber, b.PartNumber, b.Description, strconv.Itoa(b.Quantity)})
		}
	}
	if err := writeRows(f, SheetConflicts, header, conflictColumns, conflicts); err != nil {
		return err
	}
	if err := writeRows(f, SheetBOM, header, bomColumns, bom); err != nil {
		return err
	}

	if idx, err := f.GetSheetIndex(SheetSuggestions); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func runRows(sheet *ReviewSheet) [][]string {
	return [][]string{
		{"Run ID", sheet.RunID.String()},
		{"Kind", string(sheet.Kind)},
		{"Part Number", sheet.PartNumber},
		{"File", sheet.FilePath},
		{"Status", string(sheet.Status)},
		{"Summary", sheet.Summary},
		{"Created At", sheet.CreatedAt.UTC().Format(time.RFC3339)},
	}
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
