package calculator

import (
	"gonum.org/v1/gonum/stat/distuv"

	"studysize/domain/core"
)

// Quantile returns the standard normal critical value z for a confidence
// level. Two-sided: the central area between -z and z equals level.
// One-sided: the area below z equals level.
func Quantile(level float64, oneSided bool) (float64, error) {
	return quantile("ci", level, oneSided)
}

func quantile(param string, level float64, oneSided bool) (float64, error) {
	if !(level > 0 && level < 1) {
		return 0, core.NewInvalidParameter(param, level, "must be strictly between 0 and 1")
	}
	p := level
	if !oneSided {
		p = (1 + level) / 2
	}
	return distuv.UnitNormal.Quantile(p), nil
}
