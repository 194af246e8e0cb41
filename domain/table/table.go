package table

import (
	"encoding/binary"
	"fmt"
	"math"

	"studysize/domain/core"
)

// Table is a rectangular set of numeric rows with named columns.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// New creates an empty table with the given columns and room for n rows.
func New(columns []string, n int) *Table {
	return &Table{Columns: columns, Rows: make([][]float64, 0, n)}
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of one column's values.
func (t *Table) Column(name string) ([]float64, error) {
	i := t.Index(name)
	if i < 0 {
		return nil, core.NewInvalidArgument(name, "is not a column of the table")
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Append adds a row; its width must match the columns.
func (t *Table) Append(row []float64) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Fingerprint hashes the column names and every value in row order.
func (t *Table) Fingerprint() core.Hash {
	buf := make([]byte, 0, 64+8*len(t.Rows)*len(t.Columns))
	for _, c := range t.Columns {
		buf = append(buf, c...)
		buf = append(buf, 0)
	}
	for _, row := range t.Rows {
		for _, v := range row {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return core.NewHash(buf)
}
