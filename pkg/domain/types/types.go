// Package types defines core domain type aliases and identifiers for PyBryt.
package types

import "github.com/google/uuid"

// ArtifactID is a unique identifier for a submission artifact.
type ArtifactID string

// ReferenceID is a unique identifier for a reference implementation.
type ReferenceID string

// CollectorToken identifies a footprint collector handed out by the
// execution engine. Tracing is activated against a token, never against
// ambient process state.
type CollectorToken string

// NewArtifactID generates a new unique artifact ID.
func NewArtifactID() ArtifactID {
	return ArtifactID(uuid.NewString())
}

// String returns the string representation of an ArtifactID.
func (id ArtifactID) String() string {
	return string(id)
}

// IsZero returns true if the ArtifactID is the zero value.
func (id ArtifactID) IsZero() bool {
	return id == ""
}

// NewReferenceID generates a new unique reference ID.
func NewReferenceID() ReferenceID {
	return ReferenceID(uuid.NewString())
}

// String returns the string representation of a ReferenceID.
func (id ReferenceID) String() string {
	return string(id)
}

// IsZero returns true if the ReferenceID is the zero value.
func (id ReferenceID) IsZero() bool {
	return id == ""
}

// NewCollectorToken generates a new unique collector token.
func NewCollectorToken() CollectorToken {
	return CollectorToken(uuid.NewString())
}

// String returns the string representation of a CollectorToken.
func (t CollectorToken) String() string {
	return string(t)
}

// IsZero returns true if the CollectorToken is the zero value.
func (t CollectorToken) IsZero() bool {
	return t == ""
}
