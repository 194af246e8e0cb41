package excel

import (
	"encoding/csv"
	"io"
	"strconv"

	"studysize/domain/table"
)

// CSVWriter writes a sweep table as comma-separated values
type CSVWriter struct{}

// NewCSVWriter creates a CSV table writer
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (w *CSVWriter) Format() string      { return "csv" }
func (w *CSVWriter) ContentType() string { return "text/csv" }

func (w *CSVWriter) Write(out io.Writer, t *table.Table) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
