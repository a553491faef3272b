// Package plagiarism orchestrates plagiarism comparison: a reference
// implementation is synthesized from one submission artifact and each peer
// artifact is scored against it. The synthesis and comparison algorithms
// live behind interfaces; this package owns the protocol around them.
package plagiarism

import (
	"fmt"

	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// Options are opaque knobs forwarded as-is to both collaborators.
type Options map[string]interface{}

// Synthesizer builds reference implementations representing the given
// submission artifacts.
type Synthesizer interface {
	CreateReferences(artifacts []*submission.Submission, opts Options) ([]*reference.Reference, error)
}

// Comparator scores peer artifacts against a synthesized reference,
// returning one result per peer, in peer order.
type Comparator interface {
	ImplResults(ref *reference.Reference, peers []*submission.Submission, opts Options) ([]*reference.Result, error)
}

// Orchestrator wires a synthesizer and a comparator into the plagiarism
// checking protocol.
type Orchestrator struct {
	synth Synthesizer
	comp  Comparator
}

// NewOrchestrator creates an orchestrator over the given collaborators.
// Nil collaborators fall back to the built-in footprint synthesizer and
// score comparator.
func NewOrchestrator(synth Synthesizer, comp Comparator) *Orchestrator {
	if synth == nil {
		synth = &FootprintSynthesizer{}
	}
	if comp == nil {
		comp = &ScoreComparator{}
	}
	return &Orchestrator{synth: synth, comp: comp}
}

// Check synthesizes exactly one reference from self and scores every peer
// against it. The returned results align index-for-index with peers:
// result i is peer i's comparison. Beyond what the collaborators do, the
// operation has no side effects.
func (o *Orchestrator) Check(self *submission.Submission, peers []*submission.Submission, opts Options) ([]*reference.Result, error) {
	if self == nil {
		return nil, fmt.Errorf("checking plagiarism: self artifact is nil")
	}

	refs, err := o.synth.CreateReferences([]*submission.Submission{self}, opts)
	if err != nil {
		return nil, fmt.Errorf("synthesizing reference: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("synthesizing reference: synthesizer produced no reference")
	}

	results, err := o.comp.ImplResults(refs[0], peers, opts)
	if err != nil {
		return nil, fmt.Errorf("comparing peers: %w", err)
	}
	if len(results) != len(peers) {
		return nil, fmt.Errorf("comparing peers: got %d results for %d peers", len(results), len(peers))
	}
	return results, nil
}

// Check is the package-level convenience over the built-in collaborators.
func Check(self *submission.Submission, peers []*submission.Submission, opts Options) ([]*reference.Result, error) {
	return NewOrchestrator(nil, nil).Check(self, peers, opts)
}
