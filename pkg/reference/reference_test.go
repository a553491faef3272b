package reference

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

func snap(t *testing.T, v interface{}) footprint.Snapshot {
	t.Helper()
	s, err := footprint.SnapshotOf(v)
	require.NoError(t, err)
	return s
}

func fibFootprint(t *testing.T) *footprint.Footprint {
	t.Helper()
	return footprint.FromValues(
		footprint.Observation{Value: snap(t, 1), Timestamp: 0},
		footprint.Observation{Value: snap(t, 2), Timestamp: 1},
		footprint.Observation{Value: snap(t, 5), Timestamp: 2},
	)
}

func TestRun(t *testing.T) {
	seen, err := ValueAnnotation("fib(5)", 5)
	require.NoError(t, err)
	seen.Success = "fib(5) computed"

	missing, err := ValueAnnotation("fib(10)", 55)
	require.NoError(t, err)

	t.Run("all satisfied", func(t *testing.T) {
		ref := New("fibonacci", seen)
		result, err := ref.Run(fibFootprint(t), "")
		require.NoError(t, err)

		assert.True(t, result.Correct)
		assert.Equal(t, []string{"fib(5) computed"}, result.Messages)
		assert.Equal(t, ref.ID, result.ReferenceID)
	})

	t.Run("one unsatisfied", func(t *testing.T) {
		ref := New("fibonacci", seen, missing)
		result, err := ref.Run(fibFootprint(t), "")
		require.NoError(t, err)

		assert.False(t, result.Correct)
		require.Len(t, result.Messages, 2)
		assert.Contains(t, result.Messages[1], "fib(10)")
	})

	t.Run("deterministic for a fixed footprint", func(t *testing.T) {
		ref := New("fibonacci", seen, missing)
		fp := fibFootprint(t)

		first, err := ref.Run(fp, "")
		require.NoError(t, err)
		second, err := ref.Run(fp, "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestRunGroupFilter(t *testing.T) {
	graded, err := ValueAnnotation("graded", 5)
	require.NoError(t, err)
	graded.Group = "graded"

	practice, err := ValueAnnotation("practice", 99)
	require.NoError(t, err)
	practice.Group = "practice"

	ref := New("grouped", graded, practice)
	fp := fibFootprint(t)

	// Only the graded group runs: the failing practice annotation is skipped.
	result, err := ref.Run(fp, "graded")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "graded", result.Group)

	// Unknown group is an error, not a silently correct result.
	_, err = ref.Run(fp, "exam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no annotations in group "exam"`)
}

func TestRunAnnotationWithoutMatcher(t *testing.T) {
	ref := New("broken", Annotation{Name: "empty"})
	_, err := ref.Run(fibFootprint(t), "")
	assert.Error(t, err)
}

func TestValueMatcherTimestampWindow(t *testing.T) {
	digest := snap(t, 5).Digest

	tests := []struct {
		name    string
		matcher ValueMatcher
		want    bool
	}{
		{
			name:    "unbounded",
			matcher: ValueMatcher{Digest: digest},
			want:    true,
		},
		{
			name:    "within window",
			matcher: ValueMatcher{Digest: digest, MinTimestamp: 1, MaxTimestamp: 2},
			want:    true,
		},
		{
			name:    "before window",
			matcher: ValueMatcher{Digest: digest, MinTimestamp: 3},
			want:    false,
		},
		{
			name:    "after window",
			matcher: ValueMatcher{Digest: digest, MaxTimestamp: 1},
			want:    false,
		},
		{
			name:    "unknown digest",
			matcher: ValueMatcher{Digest: "no-such-digest"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.matcher.Match(fibFootprint(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueMatcherGuardExpression(t *testing.T) {
	digest := snap(t, 5).Digest

	matched, err := (&ValueMatcher{Digest: digest, When: `type == "int" && timestamp >= 2`}).Match(fibFootprint(t))
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = (&ValueMatcher{Digest: digest, When: `type == "str"`}).Match(fibFootprint(t))
	require.NoError(t, err)
	assert.False(t, matched)

	_, err = (&ValueMatcher{Digest: digest, When: `timestamp +`}).Match(fibFootprint(t))
	assert.Error(t, err)
}

func TestDumpLoadRoundTrip(t *testing.T) {
	seen, err := ValueAnnotation("fib(5)", 5)
	require.NoError(t, err)
	seen.Group = "graded"

	ref := New("fibonacci", seen)
	path := filepath.Join(t.TempDir(), "fibonacci.ref")
	require.NoError(t, ref.Dump(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ref.ID, loaded.ID)
	assert.Equal(t, ref.Name, loaded.Name)
	require.Len(t, loaded.Annotations, 1)

	// The restored reference produces the same result.
	want, err := ref.Run(fibFootprint(t), "")
	require.NoError(t, err)
	got, err := loaded.Run(fibFootprint(t), "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ref"))
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	digest := snap(t, 5).Digest

	doc := `
name: fibonacci
annotations:
  - name: fib(5)
    digest: ` + digest + `
    group: graded
    success: fib(5) computed
  - name: list result
    type: list
    value: [1, 2, 5]
    when: timestamp >= 1
`
	ref, err := ParseYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "fibonacci", ref.Name)
	require.Len(t, ref.Annotations, 2)
	assert.Equal(t, "graded", ref.Annotations[0].Group)

	matcher, ok := ref.Annotations[1].Matcher.(*ValueMatcher)
	require.True(t, ok)
	assert.Equal(t, footprint.NewSnapshot("list", []byte("[1,2,5]")).Digest, matcher.Digest)
	assert.Equal(t, "timestamp >= 1", matcher.When)
	assert.NotEmpty(t, ref.Annotations[1].Failure)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "{{",
		},
		{
			name: "missing name",
			doc:  "annotations:\n  - value: 1",
		},
		{
			name: "no annotations",
			doc:  "name: empty",
		},
		{
			name: "annotation without digest or value",
			doc:  "name: bad\nannotations:\n  - name: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestReport(t *testing.T) {
	result := &Result{Name: "fibonacci", Group: "graded", Correct: false, Messages: []string{"missing fib(10)"}}

	report := result.Report()
	assert.Contains(t, report, "REFERENCE: fibonacci")
	assert.Contains(t, report, "GROUP: graded")
	assert.Contains(t, report, "SATISFIED: false")
	assert.Contains(t, report, "- missing fib(10)")
}
