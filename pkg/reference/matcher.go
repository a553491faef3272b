package reference

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

// ValueMatcher is the built-in matcher: it is satisfied when the footprint
// contains an observation with the expected snapshot digest, optionally
// restricted to a timestamp window and guarded by a boolean expression
// evaluated per observation.
type ValueMatcher struct {
	// Digest of the expected value's snapshot.
	Digest string
	// MinTimestamp is the earliest step an observation may match at.
	MinTimestamp int
	// MaxTimestamp is the latest step an observation may match at.
	// Zero or negative means unbounded.
	MaxTimestamp int
	// When is an optional guard expression with access to the candidate
	// observation's "type" and "timestamp". Only observations for which it
	// evaluates to true may satisfy the matcher.
	When string
}

// Match reports whether the footprint contains a qualifying observation.
func (m *ValueMatcher) Match(fp *footprint.Footprint) (bool, error) {
	var guard *vm.Program
	if m.When != "" {
		program, err := expr.Compile(m.When, expr.AsBool(), expr.Env(map[string]interface{}{
			"type":      "",
			"timestamp": 0,
		}))
		if err != nil {
			return false, fmt.Errorf("compiling guard %q: %w", m.When, err)
		}
		guard = program
	}

	for _, obs := range fp.Observations() {
		if obs.Value.Digest != m.Digest {
			continue
		}
		if obs.Timestamp < m.MinTimestamp {
			continue
		}
		if m.MaxTimestamp > 0 && obs.Timestamp > m.MaxTimestamp {
			continue
		}
		if guard != nil {
			out, err := expr.Run(guard, map[string]interface{}{
				"type":      obs.Value.Type,
				"timestamp": obs.Timestamp,
			})
			if err != nil {
				return false, fmt.Errorf("evaluating guard %q: %w", m.When, err)
			}
			if pass, _ := out.(bool); !pass {
				continue
			}
		}
		return true, nil
	}
	return false, nil
}

// ValueAnnotation builds an annotation matching the given in-process value,
// snapshotted the same way test and synthesized footprints are.
func ValueAnnotation(name string, value interface{}) (Annotation, error) {
	snap, err := footprint.SnapshotOf(value)
	if err != nil {
		return Annotation{}, fmt.Errorf("annotation %q: %w", name, err)
	}
	return Annotation{
		Name:    name,
		Failure: fmt.Sprintf("expected value for %q was never produced", name),
		Matcher: &ValueMatcher{Digest: snap.Digest},
	}, nil
}
