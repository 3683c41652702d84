package export

import (
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to read UTF-8 CSV.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes the suggestion table of a review sheet as CSV.
type CSVWriter struct {
	out io.Writer
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{out: w, csv: csv.NewWriter(w)}
}

// WriteSheet writes the BOM, the header and one row per suggestion followed by one
// row per unassigned record, then flushes.
func (w *CSVWriter) WriteSheet(sheet *ReviewSheet) error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	if err := w.csv.Write(suggestionColumns); err != nil {
		return err
	}
	for i := range sheet.Suggestions {
		if err := w.csv.Write(suggestionToRow(&sheet.Suggestions[i], sheet.Decisions)); err != nil {
			return err
		}
	}
	for i := range sheet.Unassigned {
		if err := w.csv.Write(unassignedToRow(&sheet.Unassigned[i])); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
