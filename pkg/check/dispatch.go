package check

import (
	"fmt"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	pberrors "github.com/ZabehCruz/pybryt/pkg/errors"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/reference"
)

// FootprintOwner is anything carrying a captured memory footprint, and an
// identifier for error reporting. Submission artifacts satisfy this.
type FootprintOwner interface {
	Footprint() *footprint.Footprint
}

// Outcome is the shape-preserving result of a dispatch: a scalar target
// yields a scalar outcome, a list target yields an ordered list outcome.
// The two are not interchangeable; callers must consult IsScalar.
type Outcome struct {
	scalar  bool
	results []*reference.Result
}

// IsScalar reports whether the outcome carries a single bare result.
func (o *Outcome) IsScalar() bool {
	return o.scalar
}

// Result returns the scalar result. It is only meaningful when IsScalar is
// true; for list outcomes it returns the first result.
func (o *Outcome) Result() *reference.Result {
	if len(o.results) == 0 {
		return nil
	}
	return o.results[0]
}

// Results returns all results in target order.
func (o *Outcome) Results() []*reference.Result {
	out := make([]*reference.Result, len(o.results))
	copy(out, o.results)
	return out
}

// Dispatch matches the owner's footprint against the target with the given
// group filter. Each reference runs independently against the same
// footprint; list outcomes preserve target order. The footprint is never
// mutated: dispatch is a pure read-over operation.
func Dispatch(owner FootprintOwner, target Target, group string, loader reference.Loader) (*Outcome, error) {
	if owner == nil || owner.Footprint() == nil {
		return nil, fmt.Errorf("dispatching check: no footprint to check")
	}

	refs, err := target.Normalize(loader)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{scalar: target.IsScalar()}
	for _, ref := range refs {
		result, err := ref.Run(owner.Footprint(), group)
		if err != nil {
			return nil, pberrors.NewOperationalError("running reference", ownerID(owner), ref.ID.String(), err)
		}
		outcome.results = append(outcome.results, result)
	}
	return outcome, nil
}

// identified is implemented by owners that expose an artifact ID.
type identified interface {
	ID() types.ArtifactID
}

func ownerID(owner FootprintOwner) string {
	if owner, ok := owner.(identified); ok {
		return owner.ID().String()
	}
	return ""
}
