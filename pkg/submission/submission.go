// Package submission implements the submission artifact: an immutable
// bundle of a memory footprint, its step count, and optional source
// metadata. An artifact is created once, from a real execution, a
// pre-captured footprint, or a persisted envelope, and is read-only
// thereafter.
package submission

import (
	"fmt"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	pberrors "github.com/ZabehCruz/pybryt/pkg/errors"
	"github.com/ZabehCruz/pybryt/pkg/execution"
	"github.com/ZabehCruz/pybryt/pkg/footprint"
	"github.com/ZabehCruz/pybryt/pkg/notebook"
)

// Submission is a submission artifact. It exclusively owns its footprint:
// nothing mutates it after construction, all later operations are reads.
type Submission struct {
	id     types.ArtifactID
	nb     *notebook.Notebook
	nbPath string
	fp     *footprint.Footprint
	steps  int
}

type config struct {
	extraTraceTargets []string
	output            string
}

// Option configures how a submission is executed at construction.
type Option func(*config)

// WithExtraTraceTargets names additional files to trace inside during
// execution.
func WithExtraTraceTargets(targets ...string) Option {
	return func(c *config) {
		c.extraTraceTargets = append(c.extraTraceTargets, targets...)
	}
}

// WithOutput writes the executed notebook to the given path.
func WithOutput(path string) Option {
	return func(c *config) {
		c.output = path
	}
}

// New builds a submission artifact by running a notebook through the
// execution engine. source is either the path to a notebook file or an
// already-parsed *notebook.Notebook; any other kind fails with
// ErrUnsupportedInputKind before any execution happens.
func New(source interface{}, engine execution.Engine, opts ...Option) (*Submission, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	sub := &Submission{id: types.NewArtifactID()}

	switch src := source.(type) {
	case string:
		nb, err := notebook.Read(src)
		if err != nil {
			return nil, err
		}
		sub.nb = nb
		sub.nbPath = src
	case *notebook.Notebook:
		if src == nil {
			return nil, fmt.Errorf("constructing submission from nil notebook: %w", pberrors.ErrUnsupportedInputKind)
		}
		sub.nb = src
	default:
		return nil, fmt.Errorf("constructing submission from %T: %w", source, pberrors.ErrUnsupportedInputKind)
	}

	if engine == nil {
		return nil, fmt.Errorf("constructing submission: engine is nil")
	}

	steps, fp, err := engine.Execute(sub.nb, cfg.extraTraceTargets, cfg.output)
	if err != nil {
		return nil, fmt.Errorf("executing submission: %w", err)
	}
	sub.steps = steps
	sub.fp = fp
	return sub, nil
}

// FromFootprint builds a submission artifact directly from a pre-captured
// footprint, with no source metadata. The step count is derived from the
// footprint: the highest timestamp observed, or 0 when empty.
func FromFootprint(fp *footprint.Footprint) *Submission {
	if fp == nil {
		fp = footprint.New()
	}
	return &Submission{
		id:    types.NewArtifactID(),
		fp:    fp,
		steps: fp.NumSteps(),
	}
}

// ID returns the artifact's unique identifier.
func (s *Submission) ID() types.ArtifactID {
	return s.id
}

// Notebook returns the source notebook, or nil when the artifact was not
// built from a real execution.
func (s *Submission) Notebook() *notebook.Notebook {
	return s.nb
}

// Path returns the source notebook's path, or "" when unknown.
func (s *Submission) Path() string {
	return s.nbPath
}

// Footprint returns the artifact's memory footprint.
func (s *Submission) Footprint() *footprint.Footprint {
	return s.fp
}

// Steps returns the number of execution steps the footprint covers.
func (s *Submission) Steps() int {
	return s.steps
}
