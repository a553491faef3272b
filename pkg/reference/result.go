package reference

import (
	"fmt"
	"strings"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
)

// Result is the outcome of matching one reference implementation against
// one footprint.
type Result struct {
	ReferenceID types.ReferenceID
	// Name of the reference that produced this result.
	Name string
	// Group filter the reference was run with, if any.
	Group string
	// Correct is true when every evaluated annotation was satisfied.
	Correct bool
	// Messages are the per-annotation messages, in annotation order.
	Messages []string
}

// Report renders the result for display.
func (r *Result) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "REFERENCE: %s\n", r.Name)
	if r.Group != "" {
		fmt.Fprintf(&sb, "GROUP: %s\n", r.Group)
	}
	fmt.Fprintf(&sb, "SATISFIED: %t", r.Correct)
	for _, msg := range r.Messages {
		sb.WriteString("\n- ")
		sb.WriteString(msg)
	}
	return sb.String()
}
