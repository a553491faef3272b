package check

import (
	"fmt"
	"io"
	"os"

	"github.com/ZabehCruz/pybryt/pkg/execution"
	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

type inlineConfig struct {
	loader        reference.Loader
	group         string
	out           io.Writer
	collectorOpts []execution.CollectorOption
}

// InlineOption configures an inline check invocation.
type InlineOption func(*inlineConfig)

// WithLoader resolves identifier targets through the given loader.
func WithLoader(loader reference.Loader) InlineOption {
	return func(c *inlineConfig) {
		c.loader = loader
	}
}

// WithGroup restricts the check to annotations in the given group.
func WithGroup(group string) InlineOption {
	return func(c *inlineConfig) {
		c.group = group
	}
}

// WithReportWriter directs the check report to w instead of stdout.
func WithReportWriter(w io.Writer) InlineOption {
	return func(c *inlineConfig) {
		c.out = w
	}
}

// WithCollectorOptions configures the collector the block is traced into.
func WithCollectorOptions(opts ...execution.CollectorOption) InlineOption {
	return func(c *inlineConfig) {
		c.collectorOpts = append(c.collectorOpts, opts...)
	}
}

// Inline checks a live code block against references without a full
// submission execution pass.
//
// The target is validated and normalized before anything is instrumented:
// an invalid target never leaves partial activation behind. If the tracer
// is already active the protocol was entered from within another inline
// check; the block then runs as a transparent no-op with respect to
// tracing, the outer check's footprint keeps accumulating, and no nested
// report is produced.
//
// Otherwise a fresh collector is activated for the caller's context and
// released on every exit path, even when the block fails. On success an
// ephemeral submission artifact is built from the collected footprint and
// dispatched against the normalized references, and each reference's report
// is written in normalized order. A block error propagates to the caller
// after deactivation, with no report.
func Inline(ctx execution.CallerContext, tracer *execution.Tracer, target Target, block func() error, opts ...InlineOption) error {
	cfg := inlineConfig{out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	if tracer == nil {
		return fmt.Errorf("inline check: tracer is nil")
	}
	if block == nil {
		return fmt.Errorf("inline check: block is nil")
	}

	// Validating: fail fast, strictly before instrumentation.
	refs, err := target.Normalize(cfg.loader)
	if err != nil {
		return err
	}

	// Re-entrant invocation: run the block untraced, no nested report.
	if tracer.Active() {
		return block()
	}

	collector := execution.NewCollector(cfg.collectorOpts...)
	handle, err := tracer.Activate(ctx, collector)
	if err != nil {
		return fmt.Errorf("inline check: %w", err)
	}
	defer handle.Release()

	if err := block(); err != nil {
		return err
	}
	handle.Release()

	ephemeral := submission.FromFootprint(collector.Footprint())
	outcome, err := Dispatch(ephemeral, ReferenceList(refs...), cfg.group, cfg.loader)
	if err != nil {
		return err
	}

	for _, result := range outcome.Results() {
		fmt.Fprintln(cfg.out, result.Report())
	}
	return nil
}
