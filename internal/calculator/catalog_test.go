package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysize/domain/core"
	"studysize/domain/design"
)

func TestFunctions_CoverEveryMeasureAndMode(t *testing.T) {
	fns := Functions()
	require.Len(t, fns, 15)
	for i := 1; i < len(fns); i++ {
		assert.Less(t, fns[i-1].Name, fns[i].Name)
	}
	for _, m := range design.Measures {
		for _, mode := range []Mode{ModeSampleSize, ModePrecision, ModeUpperBound} {
			f, err := Lookup(FunctionName(mode, m))
			require.NoError(t, err)
			assert.Equal(t, m, f.Measure)
			assert.Equal(t, mode, f.Mode)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("n_hazard_ratio")
	assert.ErrorIs(t, err, core.ErrUnknownFunction)
	assert.True(t, core.IsInvalidParameter(err))
	assert.Equal(t, "function", core.ParameterOf(err))
}

func TestFunction_CallMatchesColumns(t *testing.T) {
	f, err := Lookup("n_risk_ratio")
	require.NoError(t, err)

	row, err := f.Call(map[string]float64{"precision": 2, "exposed": 0.4, "unexposed": 0.3, "group_ratio": 3})
	require.NoError(t, err)

	cols := f.Columns()
	require.Len(t, row, len(cols))
	for i, c := range row {
		assert.Equal(t, cols[i], c.Name)
	}
	assert.Equal(t, 0.95, row[4].Value, "ci defaults to 0.95")
	assert.Equal(t, 73.0, row[5].Value)
	assert.Equal(t, 219.0, row[6].Value)
	assert.Equal(t, 292.0, row[7].Value)
}

func TestFunction_CaseControlColumns(t *testing.T) {
	f, err := Lookup("precision_odds_ratio")
	require.NoError(t, err)
	assert.Equal(t, []string{"n_cases", "exposed_cases", "exposed_controls", "group_ratio", "ci", "precision"}, f.Columns())

	row, err := f.Call(map[string]float64{"n_cases": 500, "exposed_cases": 0.6, "exposed_controls": 0.4, "group_ratio": 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.55, row[5].Value, 0.005)
}

func TestFunction_Defaults(t *testing.T) {
	f, err := Lookup("upper_odds_ratio")
	require.NoError(t, err)

	args, err := f.Bind(map[string]float64{"upper_limit": 3, "prob": 0.8, "exposed_cases": 0.3, "exposed_controls": 0.3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0.8, 0.3, 0.3, 1, 0.95}, args)
	assert.Contains(t, f.Params[0].Description, "(1 under no association)")

	f, err = Lookup("upper_risk_difference")
	require.NoError(t, err)
	assert.Contains(t, f.Params[0].Description, "(0 under no association)")
}

func TestFunction_BindErrors(t *testing.T) {
	f, err := Lookup("upper_rate_ratio")
	require.NoError(t, err)

	_, err = f.Bind(map[string]float64{"upper_limit": 2, "exposed": 0.01, "unexposed": 0.01, "group_ratio": 1})
	assert.Equal(t, "prob", core.ParameterOf(err))

	_, err = f.Bind(map[string]float64{"upper_limit": 2, "prob": 0.9, "exposed": 0.01, "unexposed": 0.01, "group_ratio": 1, "alpha": 0.05})
	assert.Equal(t, "alpha", core.ParameterOf(err))

	_, err = f.Eval([]float64{1, 2})
	assert.Equal(t, "args", core.ParameterOf(err))
}
