package errors

import "errors"

// Validation errors raised by construction and check dispatch. Both are
// surfaced synchronously to the immediate caller, strictly before any
// instrumentation side effect occurs.
var (
	// ErrUnsupportedInputKind reports a construction or check input whose
	// shape or type is not one of the recognized variants.
	ErrUnsupportedInputKind = errors.New("unsupported input kind")

	// ErrEmptyReferenceSet reports a check invoked with zero references.
	ErrEmptyReferenceSet = errors.New("empty reference set")
)

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need both this package and stdlib errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
