package plot

import (
	"sort"
	"strconv"

	"studysize/domain/core"
	"studysize/domain/table"
)

// Point is one (x, y) pair of a line.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is one line of a chart, e.g. sample size against precision for one
// group ratio.
type Series struct {
	Name   string  `json:"name"`
	Group  float64 `json:"group"`
	Points []Point `json:"points"`
}

// Chart is everything a renderer needs to draw a line chart.
type Chart struct {
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Group  string   `json:"group,omitempty"`
	Series []Series `json:"series"`
}

// Lines splits a sweep table into one series per distinct value of the group
// column, each sorted by x. An empty group yields a single series.
func Lines(t *table.Table, x, y, group string) (*Chart, error) {
	xi, yi := t.Index(x), t.Index(y)
	if xi < 0 {
		return nil, core.NewInvalidArgument(x, "is not a column of the table")
	}
	if yi < 0 {
		return nil, core.NewInvalidArgument(y, "is not a column of the table")
	}
	gi := -1
	if group != "" {
		if gi = t.Index(group); gi < 0 {
			return nil, core.NewInvalidArgument(group, "is not a column of the table")
		}
	}

	byGroup := make(map[float64]*Series)
	order := make([]float64, 0)
	for _, row := range t.Rows {
		key := 0.0
		if gi >= 0 {
			key = row[gi]
		}
		s, ok := byGroup[key]
		if !ok {
			s = &Series{Name: seriesName(group, key), Group: key}
			byGroup[key] = s
			order = append(order, key)
		}
		s.Points = append(s.Points, Point{X: row[xi], Y: row[yi]})
	}

	sort.Float64s(order)
	chart := &Chart{XLabel: x, YLabel: y, Group: group, Series: make([]Series, 0, len(order))}
	for _, key := range order {
		s := byGroup[key]
		sort.SliceStable(s.Points, func(i, j int) bool { return s.Points[i].X < s.Points[j].X })
		chart.Series = append(chart.Series, *s)
	}
	return chart, nil
}

func seriesName(group string, key float64) string {
	if group == "" {
		return "all"
	}
	return group + "=" + strconv.FormatFloat(key, 'g', -1, 64)
}
