package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pberrors "github.com/ZabehCruz/pybryt/pkg/errors"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

func snap(t *testing.T, v interface{}) footprint.Snapshot {
	t.Helper()
	s, err := footprint.SnapshotOf(v)
	require.NoError(t, err)
	return s
}

func fibSubmission(t *testing.T) *submission.Submission {
	t.Helper()
	return submission.FromFootprint(footprint.FromValues(
		footprint.Observation{Value: snap(t, 1), Timestamp: 0},
		footprint.Observation{Value: snap(t, 2), Timestamp: 1},
		footprint.Observation{Value: snap(t, 5), Timestamp: 2},
	))
}

func TestDispatchScalarShape(t *testing.T) {
	sub := fibSubmission(t)
	ref := newReference(t, "fibonacci", 5)

	outcome, err := Dispatch(sub, SingleReference(ref), "", nil)
	require.NoError(t, err)

	assert.True(t, outcome.IsScalar())
	require.NotNil(t, outcome.Result())
	assert.True(t, outcome.Result().Correct)
	assert.Equal(t, "fibonacci", outcome.Result().Name)
}

func TestDispatchListShape(t *testing.T) {
	sub := fibSubmission(t)
	satisfied := newReference(t, "fibonacci", 5)
	unsatisfied := newReference(t, "primes", 11)

	outcome, err := Dispatch(sub, ReferenceList(satisfied, unsatisfied), "", nil)
	require.NoError(t, err)

	// A one-element list stays a list; order follows the input.
	assert.False(t, outcome.IsScalar())
	results := outcome.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "fibonacci", results[0].Name)
	assert.True(t, results[0].Correct)
	assert.Equal(t, "primes", results[1].Name)
	assert.False(t, results[1].Correct)
}

func TestDispatchSingleElementListIsNotScalar(t *testing.T) {
	outcome, err := Dispatch(fibSubmission(t), ReferenceList(newReference(t, "fibonacci", 5)), "", nil)
	require.NoError(t, err)

	assert.False(t, outcome.IsScalar())
	assert.Len(t, outcome.Results(), 1)
}

func TestDispatchEmptyReferenceSet(t *testing.T) {
	_, err := Dispatch(fibSubmission(t), ReferenceList(), "", nil)
	assert.ErrorIs(t, err, pberrors.ErrEmptyReferenceSet)
}

func TestDispatchUnsupportedShape(t *testing.T) {
	target, err := TargetOf(struct{ not string }{})
	assert.ErrorIs(t, err, pberrors.ErrUnsupportedInputKind)

	_, err = Dispatch(fibSubmission(t), target, "", nil)
	assert.ErrorIs(t, err, pberrors.ErrUnsupportedInputKind)
}

func TestDispatchDoesNotMutateFootprint(t *testing.T) {
	sub := fibSubmission(t)
	before := sub.Footprint().Observations()

	_, err := Dispatch(sub, ReferenceList(newReference(t, "a", 1), newReference(t, "b", 2)), "", nil)
	require.NoError(t, err)

	assert.Equal(t, before, sub.Footprint().Observations())
	assert.Equal(t, 2, sub.Steps())
}

func TestDispatchGroupFilter(t *testing.T) {
	graded, err := reference.ValueAnnotation("graded-5", 5)
	require.NoError(t, err)
	graded.Group = "graded"

	practice, err := reference.ValueAnnotation("practice-99", 99)
	require.NoError(t, err)
	practice.Group = "practice"

	ref := reference.New("grouped", graded, practice)

	outcome, err := Dispatch(fibSubmission(t), SingleReference(ref), "graded", nil)
	require.NoError(t, err)
	assert.True(t, outcome.Result().Correct)
}

func TestDispatchPropagatesRunErrors(t *testing.T) {
	ref := reference.New("broken", reference.Annotation{Name: "no matcher"})

	_, err := Dispatch(fibSubmission(t), SingleReference(ref), "", nil)
	require.Error(t, err)

	var opErr *pberrors.OperationalError
	require.True(t, pberrors.As(err, &opErr))
	assert.Equal(t, ref.ID.String(), opErr.ReferenceID)
}

func TestDispatchSerializedArtifactEquivalence(t *testing.T) {
	sub := fibSubmission(t)
	ref := newReference(t, "fibonacci", 5)

	encoded, err := sub.DumpString()
	require.NoError(t, err)
	restored, err := submission.LoadString(encoded)
	require.NoError(t, err)

	want, err := Dispatch(sub, SingleReference(ref), "", nil)
	require.NoError(t, err)
	got, err := Dispatch(restored, SingleReference(ref), "", nil)
	require.NoError(t, err)

	assert.Equal(t, want.Result(), got.Result())
}

func TestDispatchNilOwner(t *testing.T) {
	_, err := Dispatch(nil, SingleReference(newReference(t, "fibonacci", 5)), "", nil)
	assert.Error(t, err)
}
