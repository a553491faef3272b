package plagiarism

import (
	"fmt"

	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// FootprintSynthesizer is the built-in Synthesizer: for each artifact it
// builds a reference with one value annotation per distinct observed
// snapshot, capped by the "max_annotations" option (0 means uncapped).
type FootprintSynthesizer struct{}

// CreateReferences implements Synthesizer.
func (s *FootprintSynthesizer) CreateReferences(artifacts []*submission.Submission, opts Options) ([]*reference.Reference, error) {
	limit := optionInt(opts, "max_annotations", 0)

	refs := make([]*reference.Reference, 0, len(artifacts))
	for i, artifact := range artifacts {
		if artifact == nil {
			return nil, fmt.Errorf("synthesizing from artifact %d: artifact is nil", i)
		}

		ref := reference.New(fmt.Sprintf("synthesized-%s", artifact.ID()))
		seen := make(map[string]struct{})
		for _, obs := range artifact.Footprint().Observations() {
			if _, ok := seen[obs.Value.Digest]; ok {
				continue
			}
			seen[obs.Value.Digest] = struct{}{}

			ref.Annotations = append(ref.Annotations, reference.Annotation{
				Name:    fmt.Sprintf("value-%d", len(ref.Annotations)),
				Failure: "value not shared",
				Matcher: &reference.ValueMatcher{Digest: obs.Value.Digest},
			})
			if limit > 0 && len(ref.Annotations) >= limit {
				break
			}
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ScoreComparator is the built-in Comparator: each peer's result is the
// synthesized reference run over the peer's footprint, so a peer sharing
// every annotated value with the source artifact comes back correct.
type ScoreComparator struct{}

// ImplResults implements Comparator.
func (c *ScoreComparator) ImplResults(ref *reference.Reference, peers []*submission.Submission, opts Options) ([]*reference.Result, error) {
	group := optionString(opts, "group", "")

	results := make([]*reference.Result, 0, len(peers))
	for i, peer := range peers {
		if peer == nil {
			return nil, fmt.Errorf("comparing peer %d: artifact is nil", i)
		}
		result, err := ref.Run(peer.Footprint(), group)
		if err != nil {
			return nil, fmt.Errorf("comparing peer %d: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func optionInt(opts Options, key string, fallback int) int {
	if v, ok := opts[key].(int); ok {
		return v
	}
	return fallback
}

func optionString(opts Options, key, fallback string) string {
	if v, ok := opts[key].(string); ok {
		return v
	}
	return fallback
}
