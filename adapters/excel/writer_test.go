package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"studysize/domain/core"
	"studysize/domain/table"
)

func sweep() *table.Table {
	t := table.New([]string{"precision", "group_ratio", "n_total"}, 2)
	_ = t.Append([]float64{2, 3, 292})
	_ = t.Append([]float64{1.5, 1, 810.5})
	return t
}

func TestXLSXWriter_Cells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXWriter().Write(&buf, sweep()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"precision", "group_ratio", "n_total"}, rows[0])
	assert.Equal(t, []string{"2", "3", "292"}, rows[1])
	assert.Equal(t, "810.5", rows[2][2])
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter().Write(&buf, sweep()))
	assert.Equal(t, "precision,group_ratio,n_total\n2,3,292\n1.5,1,810.5\n", buf.String())
	assert.Equal(t, "csv", NewCSVWriter().Format())
}

func TestReadGrid_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]interface{}{
		"A1": "precision", "B1": "exposed", "C1": "group_ratio",
		"A2": 1.5, "B2": 0.4, "C2": 1,
		"A3": 2, "C3": 3,
		"A4": 3,
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(SheetName, cell, v))
	}
	path := filepath.Join(t.TempDir(), "grid.xlsx")
	require.NoError(t, f.SaveAs(path))

	grid, err := ReadGridFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 3}, grid["precision"])
	assert.Equal(t, []float64{0.4}, grid["exposed"])
	assert.Equal(t, []float64{1, 3}, grid["group_ratio"])
}

func TestReadGrid_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.csv")
	require.NoError(t, os.WriteFile(path, []byte("n_cases,exposed_cases\n100,0.6\n500,\n"), 0o644))

	grid, err := ReadGridFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 500}, grid["n_cases"])
	assert.Equal(t, []float64{0.6}, grid["exposed_cases"])
}

func TestReadGrid_Errors(t *testing.T) {
	_, err := ReadGrid(strings.NewReader("precision\nwide\n"), "csv")
	assert.Equal(t, "precision", core.ParameterOf(err))

	_, err = ReadGrid(strings.NewReader("a,a\n1,2\n"), "csv")
	assert.Equal(t, "a", core.ParameterOf(err))

	_, err = ReadGrid(strings.NewReader(""), "csv")
	assert.Equal(t, "grid", core.ParameterOf(err))

	_, err = ReadGrid(strings.NewReader(""), "ods")
	assert.Equal(t, "format", core.ParameterOf(err))
}
