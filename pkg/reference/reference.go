// Package reference models reference implementations: the expected-behavior
// entities a submission's memory footprint is matched against. The matching
// algorithm proper lives behind the Matcher interface; this package owns
// the reference lifecycle, group filtering, and result assembly.
package reference

import (
	"fmt"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

// Matcher decides whether a footprint exhibits one expected behavior.
// Matching is a pure read: a matcher must be deterministic for a fixed
// footprint and must not mutate it.
type Matcher interface {
	Match(fp *footprint.Footprint) (bool, error)
}

// Annotation is one expected behavior within a reference implementation,
// optionally restricted to a group.
type Annotation struct {
	// Name identifies the annotation in reports and errors.
	Name string
	// Group is an opaque label. Running a reference with a group filter
	// evaluates only annotations carrying that label.
	Group string
	// Success is the message surfaced when the annotation is satisfied.
	Success string
	// Failure is the message surfaced when the annotation is not satisfied.
	Failure string
	// Matcher evaluates the annotation against a footprint.
	Matcher Matcher
}

// Reference is a reference implementation: an ordered set of annotations
// encoding the computational behavior a correct submission exhibits.
type Reference struct {
	ID          types.ReferenceID
	Name        string
	Annotations []Annotation
}

// New creates a reference implementation with a fresh ID.
func New(name string, annotations ...Annotation) *Reference {
	return &Reference{
		ID:          types.NewReferenceID(),
		Name:        name,
		Annotations: annotations,
	}
}

// Run matches the reference against a footprint. When group is non-empty,
// only annotations in that group are evaluated; a group no annotation
// carries is an error rather than a silently correct result.
func (r *Reference) Run(fp *footprint.Footprint, group string) (*Result, error) {
	result := &Result{
		ReferenceID: r.ID,
		Name:        r.Name,
		Group:       group,
		Correct:     true,
	}

	ran := false
	for _, annotation := range r.Annotations {
		if group != "" && annotation.Group != group {
			continue
		}
		ran = true

		if annotation.Matcher == nil {
			return nil, fmt.Errorf("reference %q: annotation %q has no matcher", r.Name, annotation.Name)
		}
		satisfied, err := annotation.Matcher.Match(fp)
		if err != nil {
			return nil, fmt.Errorf("reference %q: annotation %q: %w", r.Name, annotation.Name, err)
		}

		if satisfied {
			if annotation.Success != "" {
				result.Messages = append(result.Messages, annotation.Success)
			}
		} else {
			result.Correct = false
			if annotation.Failure != "" {
				result.Messages = append(result.Messages, annotation.Failure)
			}
		}
	}

	if group != "" && !ran {
		return nil, fmt.Errorf("reference %q has no annotations in group %q", r.Name, group)
	}

	return result, nil
}
