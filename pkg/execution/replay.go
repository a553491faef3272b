package execution

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/notebook"
)

// ReplayEngine is an Engine that replays a pre-captured observation trace
// instead of running the submission in-process. The trace is the JSON
// stream an out-of-process instrumentation run emits:
//
//	{
//	  "observations": [{"type": "int", "value": 5, "timestamp": 2}, ...],
//	  "calls": [{"file": "fib.py", "function": "fib"}, ...]
//	}
//
// Observation values stay opaque: the raw JSON of each value becomes the
// snapshot payload as-is.
type ReplayEngine struct {
	tracePath string
}

// NewReplayEngine creates an engine replaying the trace file at tracePath.
func NewReplayEngine(tracePath string) *ReplayEngine {
	return &ReplayEngine{tracePath: tracePath}
}

// Execute builds a footprint from the recorded trace. The notebook is not
// re-run; it contributes only its import set and, when output is non-empty,
// a copy written to the output path.
func (e *ReplayEngine) Execute(nb *notebook.Notebook, extraTraceTargets []string, output string) (int, *footprint.Footprint, error) {
	data, err := os.ReadFile(e.tracePath)
	if err != nil {
		return 0, nil, fmt.Errorf("reading trace %s: %w", e.tracePath, err)
	}
	if !gjson.ValidBytes(data) {
		return 0, nil, fmt.Errorf("trace %s is not valid JSON", e.tracePath)
	}

	traced := make(map[string]struct{})
	for _, target := range extraTraceTargets {
		traced[target] = struct{}{}
	}

	fp := footprint.New()

	var parseErr error
	gjson.GetBytes(data, "observations").ForEach(func(_, obs gjson.Result) bool {
		ts := obs.Get("timestamp")
		if !ts.Exists() || ts.Int() < 0 {
			parseErr = fmt.Errorf("trace %s: observation missing non-negative timestamp: %s",
				e.tracePath, obs.Raw)
			return false
		}
		// Re-encode the payload so digests are stable against formatting
		// differences between trace emitters.
		payload, err := json.Marshal(obs.Get("value").Value())
		if err != nil {
			parseErr = fmt.Errorf("trace %s: encoding observation payload: %w", e.tracePath, err)
			return false
		}
		value := footprint.NewSnapshot(obs.Get("type").String(), payload)
		fp.AppendAt(value, int(ts.Int()))
		return true
	})
	if parseErr != nil {
		return 0, nil, parseErr
	}

	gjson.GetBytes(data, "calls").ForEach(func(_, call gjson.Result) bool {
		file := call.Get("file").String()
		// Calls outside the submission are only kept for explicitly traced files.
		if _, ok := traced[file]; ok || file == "" || len(extraTraceTargets) == 0 {
			fp.AddCall(file, call.Get("function").String())
		}
		return true
	})

	fp.OffsetCounter(fp.NumSteps())

	if nb != nil {
		fp.AddImports(nb.Imports()...)
		if output != "" {
			if err := nb.Write(output); err != nil {
				return 0, nil, fmt.Errorf("writing executed notebook: %w", err)
			}
		}
	}

	return fp.NumSteps(), fp, nil
}
