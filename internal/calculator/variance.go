package calculator

import (
	"math"

	"studysize/domain/core"
	"studysize/domain/design"
)

// varianceModel returns the large-sample variance of the estimator when the
// index group has one unit and the comparison group has ratio units.
type varianceModel func(g design.Groups, ratio float64) float64

var varianceModels = map[design.EffectMeasure]varianceModel{
	design.RiskDifference: func(g design.Groups, ratio float64) float64 {
		return g.Index*(1-g.Index) + g.Comparison*(1-g.Comparison)/ratio
	},
	// log scale
	design.RiskRatio: func(g design.Groups, ratio float64) float64 {
		return (1-g.Index)/g.Index + (1-g.Comparison)/(g.Comparison*ratio)
	},
	// Poisson counts over one unit of person-time
	design.RateDifference: func(g design.Groups, ratio float64) float64 {
		return g.Index + g.Comparison/ratio
	},
	// log scale
	design.RateRatio: func(g design.Groups, ratio float64) float64 {
		return 1/g.Index + 1/(ratio*g.Comparison)
	},
	// log scale, unconditional case-control; groups are exposure prevalences
	// among cases and controls
	design.OddsRatio: func(g design.Groups, ratio float64) float64 {
		return 1/(g.Index*(1-g.Index)) + 1/(ratio*g.Comparison*(1-g.Comparison))
	},
}

// Variance returns the per-unit variance of the measure's estimator. The
// variance for n units in the index group is Variance / n.
func Variance(m design.EffectMeasure, g design.Groups, ratio float64) (float64, error) {
	model, ok := varianceModels[m]
	if !ok {
		return 0, core.NewInvalidArgument("measure", "is not a supported effect measure")
	}
	if err := validateGroups(m, g); err != nil {
		return 0, err
	}
	if err := validateGroupRatio(ratio); err != nil {
		return 0, err
	}

	v := model(g, ratio)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, core.NewDomainUndefined("variance", v, "is not a positive finite number for these group values")
	}
	return v, nil
}

func validateGroups(m design.EffectMeasure, g design.Groups) error {
	idx, cmp := m.GroupLabels()
	if m.IsRate() {
		if err := validateRate(idx, g.Index); err != nil {
			return err
		}
		return validateRate(cmp, g.Comparison)
	}
	if err := validateProportion(idx, g.Index); err != nil {
		return err
	}
	return validateProportion(cmp, g.Comparison)
}

func validateProportion(param string, p float64) error {
	if !(p > 0 && p < 1) {
		return core.NewInvalidParameter(param, p, "must be a proportion strictly between 0 and 1")
	}
	return nil
}

func validateRate(param string, r float64) error {
	if !(r > 0) || math.IsInf(r, 1) {
		return core.NewInvalidParameter(param, r, "must be a positive finite rate")
	}
	return nil
}

func validateGroupRatio(ratio float64) error {
	if !(ratio > 0) || math.IsInf(ratio, 1) {
		return core.NewInvalidParameter("group_ratio", ratio, "must be a positive finite number")
	}
	return nil
}
