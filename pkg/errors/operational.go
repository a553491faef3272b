package errors

import (
	"fmt"
	"time"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps errors with operational context including the artifact and
// reference involved, plus a timestamp. This enables better error tracking
// when a check run fails partway through a batch of references.
type OperationalError struct {
	Operation   string                 // What operation was being performed
	ArtifactID  string                 // Which submission artifact
	ReferenceID string                 // Which reference implementation (if applicable)
	Timestamp   time.Time              // When error occurred
	Attributes  map[string]interface{} // Additional context (optional)
	Cause       error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("running reference", artifactID, referenceID, err)
//	}
func NewOperationalError(operation, artifactID, referenceID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:   operation,
		ArtifactID:  artifactID,
		ReferenceID: referenceID,
		Timestamp:   time.Now(),
		Attributes:  nil,
		Cause:       cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, artifactID, referenceID string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:   operation,
		ArtifactID:  artifactID,
		ReferenceID: referenceID,
		Timestamp:   time.Now(),
		Attributes:  attrs,
		Cause:       cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: artifact={id} reference={id}: {cause}"
// If the reference ID is empty, it's omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	var msg string
	if e.ReferenceID != "" {
		msg = fmt.Sprintf("[%s] %s: artifact=%s reference=%s: %v",
			timestamp,
			e.Operation,
			e.ArtifactID,
			e.ReferenceID,
			e.Cause)
	} else {
		msg = fmt.Sprintf("[%s] %s: artifact=%s: %v",
			timestamp,
			e.Operation,
			e.ArtifactID,
			e.Cause)
	}

	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
