package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError wraps a recovered panic so it can travel as an ordinary error.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}
	// StackTrace is the goroutine stack captured at recovery time.
	StackTrace []byte
	// Operation is the exported entry point that recovered, e.g. "OLS.Fit".
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("regdiag: %s: panic recovered: %v", e.Operation, e.PanicValue)
}

// Recover converts a panic into a *PanicError assigned to *err.
//
// Deferred at the top of exported estimator entry points so that indexing
// mistakes or gonum panics surface as errors instead of crashing the caller:
//
//	func (o *OLS) Fit(X, y mat.Matrix) (err error) {
//		defer errors.Recover(&err, "OLS.Fit")
//		...
//	}
//
// A recovered *PanicError already in flight is passed through unchanged.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if pe, ok := r.(*PanicError); ok {
			*err = pe
			return
		}
		*err = &PanicError{
			PanicValue: r,
			StackTrace: debug.Stack(),
			Operation:  operation,
		}
	}
}
