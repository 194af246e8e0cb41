package calculator

import (
	"math"

	"studysize/domain/core"
	"studysize/domain/design"
)

// maxUnits bounds any computed group size; beyond it the float64 count no
// longer maps to a meaningful int.
const maxUnits = 1e15

// SampleSize solves h = z * sqrt(v / n) for the index-group size n that gives
// the requested precision, then rounds each group up to whole units.
func SampleSize(req design.SampleSizeRequest) (design.SampleSizeResult, error) {
	result := design.SampleSizeResult{Request: req}

	if !req.Measure.Valid() {
		return result, core.NewInvalidArgument("measure", "is not a supported effect measure")
	}
	z, err := quantile("ci", req.Confidence, false)
	if err != nil {
		return result, err
	}
	h, err := HalfWidth(req.Measure.Scale(), req.Precision)
	if err != nil {
		return result, err
	}
	v, err := Variance(req.Measure, req.Groups, req.GroupRatio)
	if err != nil {
		return result, err
	}

	n := v * (z / h) * (z / h)
	result.NIndex, result.NComparison, err = splitGroups("precision", req.Precision, n, req.GroupRatio)
	if err != nil {
		return result, err
	}
	result.NTotal = result.NIndex + result.NComparison
	return result, nil
}

// splitGroups rounds the index size n and the comparison size n*ratio up to
// whole units. param names the input blamed when n is unbounded.
func splitGroups(param string, value, n, ratio float64) (int, int, error) {
	comparison := n * ratio
	if math.IsNaN(n) || n > maxUnits || comparison > maxUnits {
		return 0, 0, core.NewInvalidParameter(param, value, "requires an unbounded sample size")
	}
	return ceilUnits(n), ceilUnits(comparison), nil
}

// ceilUnits rounds up, treating values within floating-point noise of an
// integer as that integer.
func ceilUnits(x float64) int {
	if r := math.Round(x); math.Abs(x-r) <= 1e-9*math.Max(1, r) {
		return int(r)
	}
	return int(math.Ceil(x))
}
