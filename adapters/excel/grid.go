package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"studysize/domain/core"
)

// Grid maps a parameter name to its candidate values.
type Grid map[string][]float64

// ReadGridFile reads a sweep grid from an .xlsx or .csv file. Each column is
// one parameter: the header is its name and the non-empty cells below it are
// its candidate values. Columns may have different lengths.
func ReadGridFile(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer f.Close()

	kind := "xlsx"
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		kind = "csv"
	}
	return ReadGrid(f, kind)
}

// ReadGrid reads a grid from r; kind is "xlsx" or "csv".
func ReadGrid(r io.Reader, kind string) (Grid, error) {
	var rows [][]string
	switch kind {
	case "csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		var err error
		if rows, err = cr.ReadAll(); err != nil {
			return nil, fmt.Errorf("failed to read CSV grid: %w", err)
		}
	case "xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel grid: %w", err)
		}
		defer f.Close()
		sheet := SheetName
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
			sheet = f.GetSheetName(f.GetActiveSheetIndex())
		}
		if rows, err = f.GetRows(sheet); err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
	default:
		return nil, core.NewInvalidArgument("format", fmt.Sprintf("%q is not a grid format (want xlsx or csv)", kind))
	}
	return parseGrid(rows)
}

func parseGrid(rows [][]string) (Grid, error) {
	if len(rows) == 0 {
		return nil, core.NewInvalidArgument("grid", "has no header row")
	}
	headers := rows[0]
	grid := make(Grid, len(headers))
	for c, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if _, dup := grid[name]; dup {
			return nil, core.NewInvalidArgument(name, "appears twice in the grid header")
		}
		values := make([]float64, 0, len(rows)-1)
		for r := 1; r < len(rows); r++ {
			if c >= len(rows[r]) {
				continue
			}
			cell := strings.TrimSpace(rows[r][c])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, core.NewInvalidArgument(name, fmt.Sprintf("row %d: %q is not a number", r+1, cell))
			}
			values = append(values, v)
		}
		grid[name] = values
	}
	return grid, nil
}
