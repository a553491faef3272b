// Package check implements the checking dispatch protocol: classifying what
// a submission is checked against, normalizing it to a canonical reference
// list, dispatching single or multi reference runs, and the scope-bounded
// inline checking protocol for live code blocks.
package check

import (
	"fmt"

	pberrors "github.com/ZabehCruz/pybryt/pkg/errors"
	"github.com/ZabehCruz/pybryt/pkg/reference"
)

type targetKind int

const (
	kindInvalid targetKind = iota
	kindSingleReference
	kindReferenceList
	kindSingleIdentifier
	kindIdentifierList
)

// Target is the tagged variant of everything a check can run against: one
// reference, an ordered list of references, one identifier of a persisted
// reference, or an ordered list of such identifiers. Every variant
// normalizes to a canonical ordered reference list; there is no silent
// fallthrough for other shapes.
type Target struct {
	kind targetKind
	ref  *reference.Reference
	refs []*reference.Reference
	id   string
	ids  []string
}

// SingleReference targets one reference implementation. The check outcome
// for a single reference is scalar, not a one-element list.
func SingleReference(ref *reference.Reference) Target {
	return Target{kind: kindSingleReference, ref: ref}
}

// ReferenceList targets an ordered list of reference implementations.
func ReferenceList(refs ...*reference.Reference) Target {
	return Target{kind: kindReferenceList, refs: refs}
}

// SingleIdentifier targets one persisted reference by identifier.
func SingleIdentifier(id string) Target {
	return Target{kind: kindSingleIdentifier, id: id}
}

// IdentifierList targets an ordered list of persisted references.
func IdentifierList(ids ...string) Target {
	return Target{kind: kindIdentifierList, ids: ids}
}

// TargetOf classifies an arbitrary value into a Target. Accepted shapes: a
// *reference.Reference, a string identifier, an ordered collection of
// uniformly one or the other, or an already-built Target. Anything else,
// including mixed-type collections, fails with ErrUnsupportedInputKind.
func TargetOf(v interface{}) (Target, error) {
	switch val := v.(type) {
	case Target:
		return val, nil
	case *reference.Reference:
		return SingleReference(val), nil
	case string:
		return SingleIdentifier(val), nil
	case []*reference.Reference:
		return ReferenceList(val...), nil
	case []string:
		return IdentifierList(val...), nil
	case []interface{}:
		return targetOfSlice(val)
	default:
		return Target{}, fmt.Errorf("checking against %T: %w", v, pberrors.ErrUnsupportedInputKind)
	}
}

// targetOfSlice classifies a heterogeneous slice, requiring every element
// to be uniformly a reference or uniformly an identifier.
func targetOfSlice(vals []interface{}) (Target, error) {
	if len(vals) == 0 {
		return ReferenceList(), nil
	}

	switch vals[0].(type) {
	case *reference.Reference:
		refs := make([]*reference.Reference, 0, len(vals))
		for _, v := range vals {
			ref, ok := v.(*reference.Reference)
			if !ok {
				return Target{}, fmt.Errorf("mixed reference list element %T: %w", v, pberrors.ErrUnsupportedInputKind)
			}
			refs = append(refs, ref)
		}
		return ReferenceList(refs...), nil
	case string:
		ids := make([]string, 0, len(vals))
		for _, v := range vals {
			id, ok := v.(string)
			if !ok {
				return Target{}, fmt.Errorf("mixed identifier list element %T: %w", v, pberrors.ErrUnsupportedInputKind)
			}
			ids = append(ids, id)
		}
		return IdentifierList(ids...), nil
	default:
		return Target{}, fmt.Errorf("reference list element %T: %w", vals[0], pberrors.ErrUnsupportedInputKind)
	}
}

// IsScalar reports whether the target addresses exactly one reference, so
// its outcome is a bare result rather than a list.
func (t Target) IsScalar() bool {
	return t.kind == kindSingleReference || t.kind == kindSingleIdentifier
}

// Normalize resolves the target to its canonical non-empty ordered
// reference list. Identifier variants are resolved through the loader
// (reference.FileLoader when nil). An empty list fails with
// ErrEmptyReferenceSet; an unset target fails with ErrUnsupportedInputKind.
func (t Target) Normalize(loader reference.Loader) ([]*reference.Reference, error) {
	if loader == nil {
		loader = reference.FileLoader
	}

	switch t.kind {
	case kindSingleReference:
		if t.ref == nil {
			return nil, fmt.Errorf("nil reference: %w", pberrors.ErrUnsupportedInputKind)
		}
		return []*reference.Reference{t.ref}, nil

	case kindReferenceList:
		if len(t.refs) == 0 {
			return nil, pberrors.ErrEmptyReferenceSet
		}
		refs := make([]*reference.Reference, 0, len(t.refs))
		for i, ref := range t.refs {
			if ref == nil {
				return nil, fmt.Errorf("nil reference at index %d: %w", i, pberrors.ErrUnsupportedInputKind)
			}
			refs = append(refs, ref)
		}
		return refs, nil

	case kindSingleIdentifier:
		ref, err := loader.Load(t.id)
		if err != nil {
			return nil, fmt.Errorf("loading reference %q: %w", t.id, err)
		}
		return []*reference.Reference{ref}, nil

	case kindIdentifierList:
		if len(t.ids) == 0 {
			return nil, pberrors.ErrEmptyReferenceSet
		}
		refs := make([]*reference.Reference, 0, len(t.ids))
		for _, id := range t.ids {
			ref, err := loader.Load(id)
			if err != nil {
				return nil, fmt.Errorf("loading reference %q: %w", id, err)
			}
			refs = append(refs, ref)
		}
		return refs, nil

	default:
		return nil, fmt.Errorf("unset check target: %w", pberrors.ErrUnsupportedInputKind)
	}
}
