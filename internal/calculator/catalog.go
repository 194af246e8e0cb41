package calculator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"studysize/domain/core"
	"studysize/domain/design"
)

// Mode is the calculation a catalog function performs.
type Mode string

const (
	ModeSampleSize Mode = "n"
	ModePrecision  Mode = "precision"
	ModeUpperBound Mode = "upper"
)

// Param describes one scalar input of a catalog function.
type Param struct {
	Name        string   `json:"name"`
	Default     *float64 `json:"default,omitempty"`
	Description string   `json:"description"`
}

// Function is a named scalar calculation, e.g. "n_risk_ratio". Rows returned
// by Eval hold the inputs in Params order followed by Outputs.
type Function struct {
	Name    string               `json:"name"`
	Measure design.EffectMeasure `json:"measure"`
	Mode    Mode                 `json:"mode"`
	Params  []Param              `json:"params"`
	Outputs []string             `json:"outputs"`

	eval func(args []float64) ([]design.Cell, error)
}

// Columns lists parameter names followed by output names.
func (f Function) Columns() []string {
	cols := make([]string, 0, len(f.Params)+len(f.Outputs))
	for _, p := range f.Params {
		cols = append(cols, p.Name)
	}
	return append(cols, f.Outputs...)
}

// Bind orders named arguments positionally, filling defaults. Unknown or
// missing names fail with an invalid parameter error.
func (f Function) Bind(args map[string]float64) ([]float64, error) {
	known := make(map[string]bool, len(f.Params))
	values := make([]float64, len(f.Params))
	for i, p := range f.Params {
		known[p.Name] = true
		v, ok := args[p.Name]
		switch {
		case ok:
			values[i] = v
		case p.Default != nil:
			values[i] = *p.Default
		default:
			return nil, core.NewInvalidArgument(p.Name, "is required by "+f.Name)
		}
	}
	for name := range args {
		if !known[name] {
			return nil, core.NewInvalidArgument(name, fmt.Sprintf("is not a parameter of %s (want %s)", f.Name, strings.Join(f.paramNames(), ", ")))
		}
	}
	return values, nil
}

// Eval runs the calculation on positional arguments as returned by Bind.
func (f Function) Eval(values []float64) ([]design.Cell, error) {
	if len(values) != len(f.Params) {
		return nil, core.NewInvalidArgument("args", fmt.Sprintf("%s takes %d arguments, got %d", f.Name, len(f.Params), len(values)))
	}
	return f.eval(values)
}

// Call binds named arguments and evaluates.
func (f Function) Call(args map[string]float64) ([]design.Cell, error) {
	values, err := f.Bind(args)
	if err != nil {
		return nil, err
	}
	return f.eval(values)
}

func (f Function) paramNames() []string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return names
}

var catalog = buildCatalog()

// Functions returns every catalog function sorted by name.
func Functions() []Function {
	out := make([]Function, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a catalog function by name.
func Lookup(name string) (Function, error) {
	f, ok := catalog[name]
	if !ok {
		return Function{}, &core.ParameterError{
			Param:  "function",
			Value:  math.NaN(),
			Reason: fmt.Sprintf("%q is not a known function", name),
			Err:    core.ErrUnknownFunction,
		}
	}
	return f, nil
}

// FunctionName builds the catalog name for a mode and measure.
func FunctionName(mode Mode, m design.EffectMeasure) string {
	return string(mode) + "_" + string(m)
}

func buildCatalog() map[string]Function {
	fns := make(map[string]Function, 3*len(design.Measures))
	for _, m := range design.Measures {
		for _, f := range []Function{sampleSizeFunction(m), precisionFunction(m), upperBoundFunction(m)} {
			fns[f.Name] = f
		}
	}
	return fns
}

func groupParams(m design.EffectMeasure) []Param {
	idx, cmp := m.GroupLabels()
	kind := "risk"
	switch {
	case m.IsRate():
		kind = "rate per unit person-time"
	case m.IsCaseControl():
		kind = "exposure prevalence"
	}
	return []Param{
		{Name: idx, Description: fmt.Sprintf("index group %s", kind)},
		{Name: cmp, Description: fmt.Sprintf("comparison group %s", kind)},
		{Name: "group_ratio", Default: floatPtr(design.DefaultGroupRatio), Description: "comparison group size over index group size"},
		{Name: "ci", Default: floatPtr(design.DefaultConfidence), Description: "confidence level"},
	}
}

func precisionDescription(m design.EffectMeasure) string {
	if m.Scale() == design.ScaleLog {
		return "ratio of upper to lower confidence limit"
	}
	return "width of the confidence interval"
}

func sampleSizeFunction(m design.EffectMeasure) Function {
	nIdx, nCmp := m.SizeLabels()
	params := append([]Param{{Name: "precision", Description: precisionDescription(m)}}, groupParams(m)...)
	return Function{
		Name:    FunctionName(ModeSampleSize, m),
		Measure: m,
		Mode:    ModeSampleSize,
		Params:  params,
		Outputs: []string{nIdx, nCmp, "n_total"},
		eval: func(a []float64) ([]design.Cell, error) {
			r, err := sampleSizeFor(m, a[0], a[1], a[2], a[3], a[4])
			if err != nil {
				return nil, err
			}
			return r.Row(), nil
		},
	}
}

func precisionFunction(m design.EffectMeasure) Function {
	nIdx, _ := m.SizeLabels()
	params := append([]Param{{Name: nIdx, Description: "index group size"}}, groupParams(m)...)
	return Function{
		Name:    FunctionName(ModePrecision, m),
		Measure: m,
		Mode:    ModePrecision,
		Params:  params,
		Outputs: []string{"precision"},
		eval: func(a []float64) ([]design.Cell, error) {
			r, err := precisionFor(m, a[0], a[1], a[2], a[3], a[4])
			if err != nil {
				return nil, err
			}
			return r.Row(), nil
		},
	}
}

func upperBoundFunction(m design.EffectMeasure) Function {
	nIdx, nCmp := m.SizeLabels()
	params := append([]Param{
		{Name: "upper_limit", Description: fmt.Sprintf("upper confidence limit of concern, above the true effect (%g under no association)", m.NullValue())},
		{Name: "prob", Description: "probability the upper limit falls at or below upper_limit"},
	}, groupParams(m)...)
	return Function{
		Name:    FunctionName(ModeUpperBound, m),
		Measure: m,
		Mode:    ModeUpperBound,
		Params:  params,
		Outputs: []string{nIdx, nCmp, "n_total"},
		eval: func(a []float64) ([]design.Cell, error) {
			r, err := upperBoundFor(m, a[0], a[1], a[2], a[3], a[4], a[5])
			if err != nil {
				return nil, err
			}
			return r.Row(), nil
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
