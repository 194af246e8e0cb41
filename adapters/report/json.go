package report

import (
	"encoding/json"
	"io"

	"studysize/domain/table"
)

// JSONWriter writes the table as {"columns": [...], "rows": [[...]]}
type JSONWriter struct{}

func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

func (w *JSONWriter) Format() string      { return "json" }
func (w *JSONWriter) ContentType() string { return "application/json" }

func (w *JSONWriter) Write(out io.Writer, t *table.Table) error {
	return json.NewEncoder(out).Encode(t)
}
