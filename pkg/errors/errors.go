// Package errors provides error types and helpers shared across the regdiag library.
//
// The package wraps github.com/cockroachdb/errors so that callers get stack
// traces and Go 1.13+ wrapping semantics for free, and defines the typed
// errors used by estimators, transformers, and the diagnostics runner:
//
//   - NotFittedError: an operation required a fitted estimator
//   - DimensionError: matrix/vector shape mismatch
//   - ValueError: invalid argument value
//   - ValidationError: invalid configuration parameter
//   - ModelError: operation-level failure with an underlying cause
//
// All typed errors support errors.Is / errors.As through the standard
// library, and sentinel values (ErrEmptyData, ErrSingularMatrix, ...) can be
// matched through arbitrarily deep wrap chains.
package errors

import (
	"fmt"

	cockroachErrors "github.com/cockroachdb/errors"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrNotImplemented indicates the requested functionality is not implemented.
	ErrNotImplemented = cockroachErrors.New("not implemented")

	// ErrEmptyData indicates an empty matrix, vector, or table was supplied.
	ErrEmptyData = cockroachErrors.New("empty data")

	// ErrSingularMatrix indicates a matrix is singular or numerically rank deficient.
	ErrSingularMatrix = cockroachErrors.New("singular matrix")
)

// NotFittedError is returned when Predict, Transform, or a fitted-state
// accessor is called before Fit.
type NotFittedError struct {
	// ModelName is the estimator type, e.g. "OLS".
	ModelName string
	// Method is the method that required a fitted estimator.
	Method string
}

// NewNotFittedError creates a NotFittedError for the given estimator and method.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{
		ModelName: modelName,
		Method:    method,
	}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("regdiag: %s: this estimator is not fitted yet. Call Fit() before using %s()",
		e.ModelName, e.Method)
}

// DimensionError is returned when an input's shape disagrees with what the
// receiver was fitted with or what the operation requires.
type DimensionError struct {
	// Op is the operation that detected the mismatch, e.g. "OLS.Fit".
	Op string
	// Expected is the required size along Axis.
	Expected int
	// Got is the observed size along Axis.
	Got int
	// Axis is 0 for rows/samples, 1 for columns/features.
	Axis int
}

// NewDimensionError creates a DimensionError for the given operation and axis.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{
		Op:       op,
		Expected: expected,
		Got:      got,
		Axis:     axis,
	}
}

func (e *DimensionError) Error() string {
	axisName := "rows"
	if e.Axis == 1 {
		axisName = "columns"
	}
	return fmt.Sprintf("regdiag: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// ValueError is returned when an argument has an invalid value.
type ValueError struct {
	// Op is the operation that rejected the value.
	Op string
	// Message describes what was wrong.
	Message string
}

// NewValueError creates a ValueError for the given operation.
func NewValueError(op, message string) *ValueError {
	return &ValueError{
		Op:      op,
		Message: message,
	}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("regdiag: %s: %s", e.Op, e.Message)
}

// ValidationError is returned when a configuration parameter fails validation.
type ValidationError struct {
	// Param is the parameter name.
	Param string
	// Reason describes why validation failed.
	Reason string
	// Value is the rejected value.
	Value interface{}
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(param, reason string, value interface{}) *ValidationError {
	return &ValidationError{
		Param:  param,
		Reason: reason,
		Value:  value,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("regdiag: invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// ModelError wraps an underlying cause with the operation and a short
// description. Use it at estimator boundaries so callers can match the cause
// sentinel with errors.Is while still seeing where the failure occurred.
type ModelError struct {
	// Op is the failing operation, e.g. "OLS.Fit".
	Op string
	// Message is a short description of the failure.
	Message string
	// Err is the underlying cause. May be nil.
	Err error
}

// NewModelError creates a ModelError wrapping cause.
func NewModelError(op, message string, cause error) *ModelError {
	return &ModelError{
		Op:      op,
		Message: message,
		Err:     cause,
	}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("regdiag: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("regdiag: %s: %s: %v", e.Op, e.Message, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As traversal.
func (e *ModelError) Unwrap() error {
	return e.Err
}

// New creates an error with a stack trace attached.
func New(msg string) error {
	return cockroachErrors.New(msg)
}

// Newf creates a formatted error with a stack trace attached.
func Newf(format string, args ...interface{}) error {
	return cockroachErrors.Newf(format, args...)
}

// Wrap annotates err with msg, preserving the chain for errors.Is / errors.As.
// Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return cockroachErrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return cockroachErrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return cockroachErrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return cockroachErrors.As(err, target)
}

// WithStack attaches a stack trace to err at the point of the call.
func WithStack(err error) error {
	return cockroachErrors.WithStack(err)
}
