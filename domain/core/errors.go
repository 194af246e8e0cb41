package core

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidParameter marks any input outside its mathematical domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDomainUndefined marks a variance that evaluated to a non-finite or
	// non-positive value. It is reported as an invalid parameter.
	ErrDomainUndefined = fmt.Errorf("%w: variance undefined", ErrInvalidParameter)

	// Lookup errors
	ErrUnknownMeasure  = fmt.Errorf("%w: unknown effect measure", ErrInvalidParameter)
	ErrUnknownFunction = fmt.Errorf("%w: unknown function", ErrInvalidParameter)
)

// ParameterError names the parameter that violated a constraint.
type ParameterError struct {
	Param  string
	Value  float64
	Reason string
	Err    error
}

func (e *ParameterError) Error() string {
	if math.IsNaN(e.Value) {
		return fmt.Sprintf("%v: %s %s", e.Err, e.Param, e.Reason)
	}
	return fmt.Sprintf("%v: %s=%g %s", e.Err, e.Param, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

// Error constructors with context
func NewInvalidParameter(param string, value float64, reason string) error {
	return &ParameterError{Param: param, Value: value, Reason: reason, Err: ErrInvalidParameter}
}

// NewInvalidArgument reports a non-numeric parameter problem (names, shapes).
func NewInvalidArgument(param string, reason string) error {
	return &ParameterError{Param: param, Value: math.NaN(), Reason: reason, Err: ErrInvalidParameter}
}

func NewDomainUndefined(param string, value float64, reason string) error {
	return &ParameterError{Param: param, Value: value, Reason: reason, Err: ErrDomainUndefined}
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsDomainUndefined(err error) bool {
	return errors.Is(err, ErrDomainUndefined)
}

// ParameterOf returns the offending parameter name, or "" when err does not
// carry one.
func ParameterOf(err error) string {
	var pe *ParameterError
	if errors.As(err, &pe) {
		return pe.Param
	}
	return ""
}
