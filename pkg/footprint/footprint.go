// Package footprint implements the memory footprint model: the time-ordered
// record of values a submission produced during execution.
package footprint

import "sort"

// Observation is a single captured value and the step at which it was seen.
// Timestamps are non-negative, assigned by the execution engine, and
// non-decreasing across a footprint (repeats are allowed).
type Observation struct {
	Value     Snapshot
	Timestamp int
}

// Call records a function invocation observed during tracing.
type Call struct {
	File     string
	Function string
}

// Footprint is an append-only, insertion-ordered sequence of observations
// plus a step counter. Insertion order is temporal order of observation.
type Footprint struct {
	observations []Observation
	counter      int
	calls        []Call
	imports      map[string]struct{}
}

// New creates an empty footprint with its step counter at zero.
func New() *Footprint {
	return &Footprint{
		imports: make(map[string]struct{}),
	}
}

// FromValues creates a footprint pre-populated with the given observations.
// The step counter is advanced past the last observed timestamp so that
// later appends continue the sequence.
func FromValues(observations ...Observation) *Footprint {
	fp := New()
	fp.observations = append(fp.observations, observations...)
	fp.OffsetCounter(fp.NumSteps())
	return fp
}

// Combine merges footprints into a new one, offsetting each footprint's
// timestamps by the cumulative steps of those before it. Observations whose
// snapshot digest was already seen are dropped, so the combined footprint
// records each distinct value once, at its earliest adjusted timestamp.
func Combine(footprints ...*Footprint) *Footprint {
	combined := New()
	seen := make(map[string]struct{})
	offset := 0
	for _, fp := range footprints {
		if fp == nil {
			continue
		}
		combined.calls = append(combined.calls, fp.calls...)
		for module := range fp.imports {
			combined.imports[module] = struct{}{}
		}
		for _, obs := range fp.observations {
			if _, ok := seen[obs.Value.Digest]; ok {
				continue
			}
			seen[obs.Value.Digest] = struct{}{}
			combined.observations = append(combined.observations, Observation{
				Value:     obs.Value,
				Timestamp: obs.Timestamp + offset,
			})
		}
		offset += fp.NumSteps()
	}
	combined.OffsetCounter(offset)
	return combined
}

// Append records a value at the counter's current step.
func (fp *Footprint) Append(value Snapshot) {
	fp.AppendAt(value, fp.counter)
}

// AppendAt records a value at an explicit timestamp.
func (fp *Footprint) AppendAt(value Snapshot, timestamp int) {
	fp.observations = append(fp.observations, Observation{Value: value, Timestamp: timestamp})
}

// IncrementCounter advances the step counter by one.
func (fp *Footprint) IncrementCounter() {
	fp.counter++
}

// OffsetCounter advances the step counter by the given amount.
func (fp *Footprint) OffsetCounter(offset int) {
	fp.counter += offset
}

// Counter returns the step counter's current value.
func (fp *Footprint) Counter() int {
	return fp.counter
}

// At returns the observation at the given index in insertion order.
func (fp *Footprint) At(index int) Observation {
	return fp.observations[index]
}

// Len returns the number of recorded observations.
func (fp *Footprint) Len() int {
	return len(fp.observations)
}

// Observations returns a copy of the recorded observations in insertion
// order. The footprint itself is never exposed for mutation.
func (fp *Footprint) Observations() []Observation {
	out := make([]Observation, len(fp.observations))
	copy(out, fp.observations)
	return out
}

// NumSteps returns the highest timestamp in the footprint, or 0 when the
// footprint is empty. An empty execution is defined to have taken no steps.
func (fp *Footprint) NumSteps() int {
	steps := 0
	for _, obs := range fp.observations {
		if obs.Timestamp > steps {
			steps = obs.Timestamp
		}
	}
	return steps
}

// AddCall records a traced function invocation.
func (fp *Footprint) AddCall(file, function string) {
	fp.calls = append(fp.calls, Call{File: file, Function: function})
}

// Calls returns a copy of the recorded function invocations.
func (fp *Footprint) Calls() []Call {
	out := make([]Call, len(fp.calls))
	copy(out, fp.calls)
	return out
}

// AddImports records modules imported by the traced code.
func (fp *Footprint) AddImports(modules ...string) {
	if fp.imports == nil {
		fp.imports = make(map[string]struct{})
	}
	for _, module := range modules {
		fp.imports[module] = struct{}{}
	}
}

// Imports returns the recorded imported module names, sorted.
func (fp *Footprint) Imports() []string {
	out := make([]string, 0, len(fp.imports))
	for module := range fp.imports {
		out = append(out, module)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two footprints recorded the same observation
// sequence, calls, and imports.
func (fp *Footprint) Equal(other *Footprint) bool {
	if other == nil || len(fp.observations) != len(other.observations) ||
		len(fp.calls) != len(other.calls) || len(fp.imports) != len(other.imports) {
		return false
	}
	for i, obs := range fp.observations {
		o := other.observations[i]
		if obs.Timestamp != o.Timestamp || !obs.Value.Equal(o.Value) {
			return false
		}
	}
	for i, call := range fp.calls {
		if call != other.calls[i] {
			return false
		}
	}
	for module := range fp.imports {
		if _, ok := other.imports[module]; !ok {
			return false
		}
	}
	return true
}
