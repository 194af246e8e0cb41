package calculator

import (
	"math"

	"studysize/domain/core"
	"studysize/domain/design"
)

// Precision reports the precision achieved when the index group has
// req.NIndex units: h = z * sqrt(v / n), mapped back to the measure's scale.
func Precision(req design.PrecisionRequest) (design.PrecisionResult, error) {
	result := design.PrecisionResult{Request: req}

	if !req.Measure.Valid() {
		return result, core.NewInvalidArgument("measure", "is not a supported effect measure")
	}
	nParam, _ := req.Measure.SizeLabels()
	if !(req.NIndex > 0) || math.IsInf(req.NIndex, 1) {
		return result, core.NewInvalidParameter(nParam, req.NIndex, "must be a positive finite size")
	}
	z, err := quantile("ci", req.Confidence, false)
	if err != nil {
		return result, err
	}
	v, err := Variance(req.Measure, req.Groups, req.GroupRatio)
	if err != nil {
		return result, err
	}

	h := z * math.Sqrt(v/req.NIndex)
	precision := PrecisionFromHalfWidth(req.Measure.Scale(), h)
	if math.IsInf(precision, 0) || math.IsNaN(precision) {
		return result, core.NewInvalidParameter(nParam, req.NIndex, "is too small for a finite interval")
	}
	result.Precision = precision
	return result, nil
}
