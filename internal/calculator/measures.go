package calculator

import "studysize/domain/design"

// Named scalar entry points, one per measure and mode. Group inputs are
// exposed/unexposed risks or rates, or exposure prevalence among cases and
// controls for the odds ratio. groupRatio is comparison size over index size.

func NRiskDifference(precision, exposed, unexposed, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return sampleSizeFor(design.RiskDifference, precision, exposed, unexposed, groupRatio, ci)
}

func NRiskRatio(precision, exposed, unexposed, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return sampleSizeFor(design.RiskRatio, precision, exposed, unexposed, groupRatio, ci)
}

// NRateDifference returns person-time per group; rates are per unit of person-time.
func NRateDifference(precision, exposed, unexposed, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return sampleSizeFor(design.RateDifference, precision, exposed, unexposed, groupRatio, ci)
}

func NRateRatio(precision, exposed, unexposed, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return sampleSizeFor(design.RateRatio, precision, exposed, unexposed, groupRatio, ci)
}

// NOddsRatio returns the number of cases and controls.
func NOddsRatio(precision, exposedCases, exposedControls, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return sampleSizeFor(design.OddsRatio, precision, exposedCases, exposedControls, groupRatio, ci)
}

func PrecisionRiskDifference(nExposed, exposed, unexposed, groupRatio, ci float64) (design.PrecisionResult, error) {
	return precisionFor(design.RiskDifference, nExposed, exposed, unexposed, groupRatio, ci)
}

func PrecisionRiskRatio(nExposed, exposed, unexposed, groupRatio, ci float64) (design.PrecisionResult, error) {
	return precisionFor(design.RiskRatio, nExposed, exposed, unexposed, groupRatio, ci)
}

func PrecisionRateDifference(nExposed, exposed, unexposed, groupRatio, ci float64) (design.PrecisionResult, error) {
	return precisionFor(design.RateDifference, nExposed, exposed, unexposed, groupRatio, ci)
}

func PrecisionRateRatio(nExposed, exposed, unexposed, groupRatio, ci float64) (design.PrecisionResult, error) {
	return precisionFor(design.RateRatio, nExposed, exposed, unexposed, groupRatio, ci)
}

func PrecisionOddsRatio(nCases, exposedCases, exposedControls, groupRatio, ci float64) (design.PrecisionResult, error) {
	return precisionFor(design.OddsRatio, nCases, exposedCases, exposedControls, groupRatio, ci)
}

func UpperRiskDifference(upperLimit, prob, exposed, unexposed, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return upperBoundFor(design.RiskDifference, upperLimit, prob, exposed, unexposed, groupRatio, ci)
}

func UpperRiskRatio(upperLimit, prob, exposed, unexposed, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return upperBoundFor(design.RiskRatio, upperLimit, prob, exposed, unexposed, groupRatio, ci)
}

func UpperRateDifference(upperLimit, prob, exposed, unexposed, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return upperBoundFor(design.RateDifference, upperLimit, prob, exposed, unexposed, groupRatio, ci)
}

func UpperRateRatio(upperLimit, prob, exposed, unexposed, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return upperBoundFor(design.RateRatio, upperLimit, prob, exposed, unexposed, groupRatio, ci)
}

func UpperOddsRatio(upperLimit, prob, exposedCases, exposedControls, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return upperBoundFor(design.OddsRatio, upperLimit, prob, exposedCases, exposedControls, groupRatio, ci)
}

func sampleSizeFor(m design.EffectMeasure, precision, index, comparison, groupRatio, ci float64) (design.SampleSizeResult, error) {
	return SampleSize(design.SampleSizeRequest{
		Measure:    m,
		Precision:  precision,
		Groups:     design.Groups{Index: index, Comparison: comparison},
		GroupRatio: groupRatio,
		Confidence: ci,
	})
}

func precisionFor(m design.EffectMeasure, n, index, comparison, groupRatio, ci float64) (design.PrecisionResult, error) {
	return Precision(design.PrecisionRequest{
		Measure:    m,
		NIndex:     n,
		Groups:     design.Groups{Index: index, Comparison: comparison},
		GroupRatio: groupRatio,
		Confidence: ci,
	})
}

func upperBoundFor(m design.EffectMeasure, upperLimit, prob, index, comparison, groupRatio, ci float64) (design.UpperBoundResult, error) {
	return UpperBound(design.UpperBoundRequest{
		Measure:    m,
		UpperLimit: upperLimit,
		Prob:       prob,
		Groups:     design.Groups{Index: index, Comparison: comparison},
		GroupRatio: groupRatio,
		Confidence: ci,
	})
}
