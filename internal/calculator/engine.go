package calculator

import "studysize/domain/design"

// Engine exposes the package functions behind ports.Calculator.
type Engine struct{}

// New creates a calculator engine
func New() *Engine {
	return &Engine{}
}

func (e *Engine) SampleSize(req design.SampleSizeRequest) (design.SampleSizeResult, error) {
	return SampleSize(req)
}

func (e *Engine) Precision(req design.PrecisionRequest) (design.PrecisionResult, error) {
	return Precision(req)
}

func (e *Engine) UpperBound(req design.UpperBoundRequest) (design.UpperBoundResult, error) {
	return UpperBound(req)
}

func (e *Engine) Functions() []Function {
	return Functions()
}

func (e *Engine) Lookup(name string) (Function, error) {
	return Lookup(name)
}
