package calculator

import (
	"math"

	"studysize/domain/core"
	"studysize/domain/design"
)

// HalfWidth converts a precision target to the half-width of the confidence
// interval on the estimation scale. Ratio measures take the ratio of upper
// to lower bound; difference measures take the full interval width.
func HalfWidth(scale design.Scale, precision float64) (float64, error) {
	if math.IsInf(precision, 0) {
		return 0, core.NewInvalidParameter("precision", precision, "must be finite")
	}
	if scale == design.ScaleLog {
		if !(precision > 1) {
			return 0, core.NewInvalidParameter("precision", precision, "ratio of upper to lower bound must be > 1")
		}
		return math.Log(precision) / 2, nil
	}
	if !(precision > 0) {
		return 0, core.NewInvalidParameter("precision", precision, "interval width must be > 0")
	}
	return precision / 2, nil
}

// PrecisionFromHalfWidth is the inverse of HalfWidth.
func PrecisionFromHalfWidth(scale design.Scale, h float64) float64 {
	if scale == design.ScaleLog {
		return math.Exp(2 * h)
	}
	return 2 * h
}
