package table

import (
	"github.com/montanaflynn/stats"
)

// ColumnSummary describes the spread of one column across a sweep.
type ColumnSummary struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
}

// Summarize computes summaries for the named columns. Columns that are
// missing or empty are skipped.
func (t *Table) Summarize(columns ...string) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		data, err := t.Column(name)
		if err != nil || len(data) == 0 {
			continue
		}
		s := ColumnSummary{Column: name}
		s.Min, _ = stats.Min(data)
		s.Max, _ = stats.Max(data)
		s.Median, _ = stats.Median(data)
		s.Mean, _ = stats.Mean(data)
		out = append(out, s)
	}
	return out
}
