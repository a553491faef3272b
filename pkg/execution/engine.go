// Package execution defines the contract with the instrumentation engine
// that produces memory footprints, and the single-owner tracing protocol
// used to collect one inside a live code block.
package execution

import (
	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/notebook"
)

// Engine runs a submission under instrumentation and returns its memory
// footprint. The instrumentation itself (how values are snapshotted during
// execution) is the engine's contract; this package only consumes it.
type Engine interface {
	// Execute runs the notebook and returns the step count and captured
	// footprint. extraTraceTargets names additional files to trace inside
	// during execution. When output is non-empty, the executed notebook is
	// written there.
	Execute(nb *notebook.Notebook, extraTraceTargets []string, output string) (int, *footprint.Footprint, error)
}
