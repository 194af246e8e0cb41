package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysize/domain/core"
	"studysize/domain/table"
)

func sweepTable() *table.Table {
	t := table.New([]string{"precision", "group_ratio", "n_total"}, 6)
	_ = t.Append([]float64{3, 1, 60})
	_ = t.Append([]float64{2, 1, 150})
	_ = t.Append([]float64{1.5, 1, 420})
	_ = t.Append([]float64{3, 3, 80})
	_ = t.Append([]float64{2, 3, 200})
	_ = t.Append([]float64{1.5, 3, 560})
	return t
}

func TestLines_GroupsAndSorts(t *testing.T) {
	chart, err := Lines(sweepTable(), "precision", "n_total", "group_ratio")
	require.NoError(t, err)
	require.Len(t, chart.Series, 2)

	first := chart.Series[0]
	assert.Equal(t, "group_ratio=1", first.Name)
	assert.Equal(t, []Point{{1.5, 420}, {2, 150}, {3, 60}}, first.Points)
	assert.Equal(t, "group_ratio=3", chart.Series[1].Name)
	assert.Equal(t, "precision", chart.XLabel)
	assert.Equal(t, "n_total", chart.YLabel)
}

func TestLines_SingleSeries(t *testing.T) {
	chart, err := Lines(sweepTable(), "precision", "n_total", "")
	require.NoError(t, err)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "all", chart.Series[0].Name)
	assert.Len(t, chart.Series[0].Points, 6)
}

func TestLines_UnknownColumn(t *testing.T) {
	_, err := Lines(sweepTable(), "width", "n_total", "")
	assert.Equal(t, "width", core.ParameterOf(err))

	_, err = Lines(sweepTable(), "precision", "n_total", "ci")
	assert.True(t, core.IsInvalidParameter(err))
}
