package calculator

import (
	"math"

	"studysize/domain/core"
	"studysize/domain/design"
)

// UpperBound finds the sample size at which the upper confidence limit falls
// at or below req.UpperLimit with probability req.Prob, when the true effect
// is the one implied by req.Groups.
//
// The estimated upper limit is normal around the true upper limit
// theta + zCI*se, so P(upper <= U) = Phi((d - zCI*se)/se) with d the distance
// from theta to U on the estimation scale. Setting that to Prob gives
// n = v * ((zCI + zProb) / d)^2.
func UpperBound(req design.UpperBoundRequest) (design.UpperBoundResult, error) {
	result := design.UpperBoundResult{Request: req}

	if !req.Measure.Valid() {
		return result, core.NewInvalidArgument("measure", "is not a supported effect measure")
	}
	zCI, err := quantile("ci", req.Confidence, false)
	if err != nil {
		return result, err
	}
	zProb, err := quantile("prob", req.Prob, true)
	if err != nil {
		return result, err
	}
	v, err := Variance(req.Measure, req.Groups, req.GroupRatio)
	if err != nil {
		return result, err
	}

	d, err := upperDistance(req.Measure, req.UpperLimit, req.Measure.Effect(req.Groups))
	if err != nil {
		return result, err
	}

	k := (zCI + zProb) / d
	n := v * k * k
	// zCI + zProb <= 0 only when prob is below 1 - (1+ci)/2; the bound is then
	// met with any sample size.
	if zCI+zProb <= 0 {
		n = 0
	}
	result.NIndex, result.NComparison, err = splitGroups("upper_limit", req.UpperLimit, n, req.GroupRatio)
	if err != nil {
		return result, err
	}
	result.NTotal = result.NIndex + result.NComparison
	return result, nil
}

// upperDistance is the distance from the true effect to the upper limit on
// the estimation scale. It must be strictly positive.
func upperDistance(m design.EffectMeasure, upper, effect float64) (float64, error) {
	if math.IsNaN(upper) || math.IsInf(upper, 0) {
		return 0, core.NewInvalidParameter("upper_limit", upper, "must be finite")
	}
	if m.Scale() == design.ScaleLog {
		if !(upper > 0) {
			return 0, core.NewInvalidParameter("upper_limit", upper, "must be > 0 for a ratio measure")
		}
		if !(upper > effect) {
			return 0, core.NewInvalidParameter("upper_limit", upper, "must be above the true effect implied by the groups")
		}
		return math.Log(upper) - math.Log(effect), nil
	}
	if !(upper > effect) {
		return 0, core.NewInvalidParameter("upper_limit", upper, "must be above the true effect implied by the groups")
	}
	return upper - effect, nil
}
