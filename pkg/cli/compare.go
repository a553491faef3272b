package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/plagiarism"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	var maxAnnotations int

	cmd := &cobra.Command{
		Use:   "compare <artifact> <peer-artifact>...",
		Short: "Compare a submission artifact against peers for plagiarism",
		Long: `Compare a submission artifact against peer artifacts.

A reference implementation is synthesized from the first artifact's memory
footprint and every peer is scored against it. All arguments are persisted
artifact envelopes, as written by export or by check --save.

Examples:
  # Compare one submission against two peers
  pybryt compare student.pkl peer1.pkl peer2.pkl

  # Limit the synthesized reference to the first 50 distinct values
  pybryt compare student.pkl peer1.pkl --max-annotations 50`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := submission.Load(args[0])
			if err != nil {
				return err
			}

			peers := make([]*submission.Submission, 0, len(args)-1)
			for _, path := range args[1:] {
				peer, err := submission.Load(path)
				if err != nil {
					return err
				}
				peers = append(peers, peer)
			}

			opts := plagiarism.Options{}
			if maxAnnotations > 0 {
				opts["max_annotations"] = maxAnnotations
			}

			results, err := plagiarism.Check(self, peers, opts)
			if err != nil {
				return err
			}

			for i, result := range results {
				verdict := "no match"
				if result.Correct {
					verdict = "MATCH"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[i+1], verdict)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&maxAnnotations, "max-annotations", 0, "Cap on synthesized annotations (0 = uncapped)")

	return cmd
}
