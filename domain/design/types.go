package design

import (
	"fmt"
	"math"
	"strings"

	"studysize/domain/core"
)

// DefaultConfidence is the confidence level used when a caller does not set one.
const DefaultConfidence = 0.95

// DefaultGroupRatio sizes the comparison group equal to the index group.
const DefaultGroupRatio = 1.0

// EffectMeasure identifies a measure of association.
type EffectMeasure string

const (
	RiskDifference EffectMeasure = "risk_difference"
	RiskRatio      EffectMeasure = "risk_ratio"
	RateDifference EffectMeasure = "rate_difference"
	RateRatio      EffectMeasure = "rate_ratio"
	OddsRatio      EffectMeasure = "odds_ratio"
)

// Measures lists every supported measure in a stable order.
var Measures = []EffectMeasure{RiskDifference, RiskRatio, RateDifference, RateRatio, OddsRatio}

// Scale is the scale on which the confidence interval is symmetric.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog
)

func (s Scale) String() string {
	if s == ScaleLog {
		return "log"
	}
	return "linear"
}

// ParseEffectMeasure accepts the canonical name, with dashes or spaces tolerated.
func ParseEffectMeasure(s string) (EffectMeasure, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	m := EffectMeasure(normalized)
	if !m.Valid() {
		return "", &core.ParameterError{
			Param:  "measure",
			Value:  math.NaN(),
			Reason: fmt.Sprintf("%q is not one of %s", s, strings.Join(measureNames(), ", ")),
			Err:    core.ErrUnknownMeasure,
		}
	}
	return m, nil
}

func measureNames() []string {
	names := make([]string, len(Measures))
	for i, m := range Measures {
		names[i] = string(m)
	}
	return names
}

func (m EffectMeasure) String() string { return string(m) }

// Valid reports whether m is one of the supported measures.
func (m EffectMeasure) Valid() bool {
	switch m {
	case RiskDifference, RiskRatio, RateDifference, RateRatio, OddsRatio:
		return true
	}
	return false
}

// Scale returns ScaleLog for ratio measures and ScaleLinear for differences.
func (m EffectMeasure) Scale() Scale {
	switch m {
	case RiskRatio, RateRatio, OddsRatio:
		return ScaleLog
	}
	return ScaleLinear
}

// IsRate reports whether the group inputs are rates rather than proportions.
func (m EffectMeasure) IsRate() bool {
	return m == RateDifference || m == RateRatio
}

// IsCaseControl reports whether groups are cases and controls.
func (m EffectMeasure) IsCaseControl() bool {
	return m == OddsRatio
}

// NullValue is the value of the measure under no association.
func (m EffectMeasure) NullValue() float64 {
	if m.Scale() == ScaleLog {
		return 1
	}
	return 0
}

// Effect returns the value of the measure implied by the two groups.
func (m EffectMeasure) Effect(g Groups) float64 {
	switch m {
	case RiskDifference, RateDifference:
		return g.Index - g.Comparison
	case RiskRatio, RateRatio:
		return g.Index / g.Comparison
	case OddsRatio:
		return (g.Index / (1 - g.Index)) / (g.Comparison / (1 - g.Comparison))
	}
	return math.NaN()
}

// GroupLabels names the index and comparison group inputs.
func (m EffectMeasure) GroupLabels() (index, comparison string) {
	if m.IsCaseControl() {
		return "exposed_cases", "exposed_controls"
	}
	return "exposed", "unexposed"
}

// SizeLabels names the index and comparison group sizes.
func (m EffectMeasure) SizeLabels() (index, comparison string) {
	if m.IsCaseControl() {
		return "n_cases", "n_controls"
	}
	return "n_exposed", "n_unexposed"
}

// Groups holds the index (exposed, or cases) and comparison (unexposed, or
// controls) group proportions or rates.
type Groups struct {
	Index      float64 `json:"index"`
	Comparison float64 `json:"comparison"`
}

// SampleSizeRequest asks for the sample size giving a target precision.
type SampleSizeRequest struct {
	Measure    EffectMeasure `json:"measure"`
	Precision  float64       `json:"precision"`
	Groups     Groups        `json:"groups"`
	GroupRatio float64       `json:"group_ratio"`
	Confidence float64       `json:"ci"`
}

// PrecisionRequest asks for the precision achieved by a fixed index-group size.
type PrecisionRequest struct {
	Measure    EffectMeasure `json:"measure"`
	NIndex     float64       `json:"n_index"`
	Groups     Groups        `json:"groups"`
	GroupRatio float64       `json:"group_ratio"`
	Confidence float64       `json:"ci"`
}

// UpperBoundRequest asks for the sample size at which the upper confidence
// limit stays at or below UpperLimit with probability Prob.
type UpperBoundRequest struct {
	Measure    EffectMeasure `json:"measure"`
	UpperLimit float64       `json:"upper_limit"`
	Prob       float64       `json:"prob"`
	Groups     Groups        `json:"groups"`
	GroupRatio float64       `json:"group_ratio"`
	Confidence float64       `json:"ci"`
}

// SampleSizeResult is the per-group size needed for a target precision.
type SampleSizeResult struct {
	Request     SampleSizeRequest `json:"request"`
	NIndex      int               `json:"n_index"`
	NComparison int               `json:"n_comparison"`
	NTotal      int               `json:"n_total"`
}

// PrecisionResult is the precision achieved at a fixed sample size.
type PrecisionResult struct {
	Request   PrecisionRequest `json:"request"`
	Precision float64          `json:"precision"`
}

// UpperBoundResult is the per-group size meeting an upper-bound probability.
type UpperBoundResult struct {
	Request     UpperBoundRequest `json:"request"`
	NIndex      int               `json:"n_index"`
	NComparison int               `json:"n_comparison"`
	NTotal      int               `json:"n_total"`
}

// Cell is one named value of a result row.
type Cell struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Row lists inputs followed by outputs using measure-specific column names.
func (r SampleSizeResult) Row() []Cell {
	q := r.Request
	idx, cmp := q.Measure.GroupLabels()
	nIdx, nCmp := q.Measure.SizeLabels()
	return []Cell{
		{"precision", q.Precision},
		{idx, q.Groups.Index},
		{cmp, q.Groups.Comparison},
		{"group_ratio", q.GroupRatio},
		{"ci", q.Confidence},
		{nIdx, float64(r.NIndex)},
		{nCmp, float64(r.NComparison)},
		{"n_total", float64(r.NTotal)},
	}
}

func (r PrecisionResult) Row() []Cell {
	q := r.Request
	idx, cmp := q.Measure.GroupLabels()
	nIdx, _ := q.Measure.SizeLabels()
	return []Cell{
		{nIdx, q.NIndex},
		{idx, q.Groups.Index},
		{cmp, q.Groups.Comparison},
		{"group_ratio", q.GroupRatio},
		{"ci", q.Confidence},
		{"precision", r.Precision},
	}
}

func (r UpperBoundResult) Row() []Cell {
	q := r.Request
	idx, cmp := q.Measure.GroupLabels()
	nIdx, nCmp := q.Measure.SizeLabels()
	return []Cell{
		{"upper_limit", q.UpperLimit},
		{"prob", q.Prob},
		{idx, q.Groups.Index},
		{cmp, q.Groups.Comparison},
		{"group_ratio", q.GroupRatio},
		{"ci", q.Confidence},
		{nIdx, float64(r.NIndex)},
		{nCmp, float64(r.NComparison)},
		{"n_total", float64(r.NTotal)},
	}
}
