package ports

import (
	"studysize/domain/design"
	"studysize/internal/calculator"
)

// CalculatorPort computes study sizes and precision for one set of scalar inputs
type CalculatorPort interface {
	SampleSize(req design.SampleSizeRequest) (design.SampleSizeResult, error)
	Precision(req design.PrecisionRequest) (design.PrecisionResult, error)
	UpperBound(req design.UpperBoundRequest) (design.UpperBoundResult, error)
}

// FunctionCatalogPort resolves named scalar functions for the sweep mapper
type FunctionCatalogPort interface {
	Functions() []calculator.Function
	Lookup(name string) (calculator.Function, error)
}

// Calculator is the full surface the front-ends depend on
type Calculator interface {
	CalculatorPort
	FunctionCatalogPort
}
