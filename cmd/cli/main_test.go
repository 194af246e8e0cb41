package main

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
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSampleSizeCommand(t *testing.T) {
	out, err := run(t, "n", "risk-difference", "--precision", "0.08", "--exposed", "0.4",
		"--unexposed", "0.3", "--group-ratio", "3", "--ci", "0.9", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "precision,exposed,unexposed,group_ratio,ci,n_exposed,n_unexposed,n_total", lines[0])
	assert.Equal(t, "0.08,0.4,0.3,3,0.9,525,1573,2098", lines[1])
}

func TestSampleSizeCommand_DefaultConfidence(t *testing.T) {
	t.Setenv("DEFAULT_CONFIDENCE", "0.95")
	out, err := run(t, "n", "risk_ratio", "--precision", "2", "--exposed", "0.4",
		"--unexposed", "0.3", "--group-ratio", "3", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, ",73,219,292")
}

func TestPrecisionCommand(t *testing.T) {
	out, err := run(t, "precision", "odds_ratio", "--n", "500", "--exposed", "0.6",
		"--unexposed", "0.4", "--group-ratio", "2", "--format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "n_cases")
	assert.Contains(t, out, "1.55")
}

func TestUpperCommand(t *testing.T) {
	out, err := run(t, "upper", "rate_ratio", "--upper-limit", "2", "--prob", "0.9",
		"--exposed", "0.01", "--unexposed", "0.01", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, ",4374,4374,8748")
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "n", "hazard_ratio", "--precision", "2", "--exposed", "0.4", "--unexposed", "0.3")
	assert.True(t, core.IsInvalidParameter(err))
	assert.Equal(t, "measure", core.ParameterOf(err))

	_, err = run(t, "n", "risk_ratio", "--precision", "0.5", "--exposed", "0.4", "--unexposed", "0.3")
	assert.Equal(t, "precision", core.ParameterOf(err))

	_, err = run(t, "n", "risk_ratio", "--exposed", "0.4", "--unexposed", "0.3")
	assert.Error(t, err)
}

func TestMapCommand_Args(t *testing.T) {
	out, err := run(t, "map", "n_risk_difference",
		"--arg", "precision=0.08,0.1", "--arg", "exposed=0.4", "--arg", "unexposed=0.3",
		"--arg", "group_ratio=3", "--arg", "ci=0.9")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0.08,0.4,0.3,3,0.9,525,1573,2098", lines[1])
}

func TestMapCommand_GridFileToXLSX(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPORT_DIR", dir)

	gridPath := filepath.Join(dir, "grid.csv")
	require.NoError(t, os.WriteFile(gridPath, []byte("n_exposed,exposed,unexposed\n100,0.4,0.3\n200,,\n"), 0o644))

	_, err := run(t, "map", "precision_risk_ratio", "--grid", gridPath, "--arg", "group_ratio=1,2",
		"--format", "xlsx", "--out", "out.xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "out.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "n_exposed", rows[0][0])
	assert.Equal(t, "precision", rows[0][len(rows[0])-1])
}

func TestParseArg(t *testing.T) {
	name, values, err := parseArg("precision = 1.5, 2,3")
	require.NoError(t, err)
	assert.Equal(t, "precision", name)
	assert.Equal(t, []float64{1.5, 2, 3}, values)

	for _, bad := range []string{"precision", "=1", "precision=", "precision=a"} {
		_, _, err := parseArg(bad)
		assert.Error(t, err, bad)
	}
}

func TestFunctionsCommand(t *testing.T) {
	out, err := run(t, "functions")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 15)
	assert.Contains(t, out, "upper_odds_ratio")
	assert.Contains(t, out, "ci=0.95")
}
