package footprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(t *testing.T, v interface{}) Snapshot {
	t.Helper()
	s, err := SnapshotOf(v)
	require.NoError(t, err)
	return s
}

func TestNumSteps(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []int
		want       int
	}{
		{
			name:       "empty footprint takes zero steps",
			timestamps: nil,
			want:       0,
		},
		{
			name:       "single observation",
			timestamps: []int{4},
			want:       4,
		},
		{
			name:       "non-decreasing timestamps",
			timestamps: []int{0, 1, 2},
			want:       2,
		},
		{
			name:       "repeated timestamps",
			timestamps: []int{0, 0, 3, 3},
			want:       3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := New()
			for i, ts := range tt.timestamps {
				fp.AppendAt(snap(t, i), ts)
			}
			assert.Equal(t, tt.want, fp.NumSteps())
		})
	}
}

func TestNumStepsConcreteScenario(t *testing.T) {
	// Values 1, 2, 5 observed at steps 0, 1, 2.
	fp := New()
	fp.AppendAt(snap(t, 1), 0)
	fp.AppendAt(snap(t, 2), 1)
	fp.AppendAt(snap(t, 5), 2)

	assert.Equal(t, 2, fp.NumSteps())
}

func TestAppendUsesCounter(t *testing.T) {
	fp := New()
	fp.Append(snap(t, "a"))
	fp.IncrementCounter()
	fp.IncrementCounter()
	fp.Append(snap(t, "b"))

	require.Equal(t, 2, fp.Len())
	assert.Equal(t, 0, fp.At(0).Timestamp)
	assert.Equal(t, 2, fp.At(1).Timestamp)
}

func TestFromValuesAdvancesCounter(t *testing.T) {
	fp := FromValues(
		Observation{Value: snap(t, 1), Timestamp: 0},
		Observation{Value: snap(t, 2), Timestamp: 5},
	)

	assert.Equal(t, 5, fp.Counter())

	fp.Append(snap(t, 3))
	assert.Equal(t, 5, fp.At(2).Timestamp)
}

func TestObservationsReturnsCopy(t *testing.T) {
	fp := FromValues(Observation{Value: snap(t, 1), Timestamp: 0})

	obs := fp.Observations()
	obs[0].Timestamp = 99

	assert.Equal(t, 0, fp.At(0).Timestamp)
}

func TestCombine(t *testing.T) {
	a := FromValues(
		Observation{Value: snap(t, "x"), Timestamp: 1},
		Observation{Value: snap(t, "y"), Timestamp: 2},
	)
	a.AddImports("math")
	a.AddCall("submission.py", "solve")

	b := FromValues(
		Observation{Value: snap(t, "y"), Timestamp: 0}, // duplicate, dropped
		Observation{Value: snap(t, "z"), Timestamp: 4},
	)
	b.AddImports("math", "itertools")

	combined := Combine(a, b)

	require.Equal(t, 3, combined.Len())
	assert.Equal(t, 1, combined.At(0).Timestamp)
	assert.Equal(t, 2, combined.At(1).Timestamp)
	// b's timestamps are offset by a's step count (2).
	assert.Equal(t, 6, combined.At(2).Timestamp)
	assert.Equal(t, snap(t, "z").Digest, combined.At(2).Value.Digest)

	assert.Equal(t, []string{"itertools", "math"}, combined.Imports())
	assert.Equal(t, []Call{{File: "submission.py", Function: "solve"}}, combined.Calls())
}

func TestCombineSkipsNil(t *testing.T) {
	a := FromValues(Observation{Value: snap(t, 1), Timestamp: 1})

	combined := Combine(nil, a, nil)

	require.Equal(t, 1, combined.Len())
	assert.Equal(t, 1, combined.NumSteps())
}

func TestSnapshotEquality(t *testing.T) {
	a := snap(t, map[string]int{"n": 1})
	b := snap(t, map[string]int{"n": 1})
	c := snap(t, map[string]int{"n": 2})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.IsZero())
	assert.True(t, Snapshot{}.IsZero())
}

func TestSnapshotDigestCoversType(t *testing.T) {
	// Same payload bytes under different reported types must not collide.
	a := NewSnapshot("int", []byte("1"))
	b := NewSnapshot("float", []byte("1"))

	assert.NotEqual(t, a.Digest, b.Digest)
}

func TestEqual(t *testing.T) {
	a := FromValues(Observation{Value: snap(t, 1), Timestamp: 0})
	b := FromValues(Observation{Value: snap(t, 1), Timestamp: 0})
	c := FromValues(Observation{Value: snap(t, 1), Timestamp: 1})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	b.AddImports("os")
	assert.False(t, a.Equal(b))
}
