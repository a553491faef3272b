package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/execution"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		tracePath  string
		outputPath string
		asString   bool
	)

	cmd := &cobra.Command{
		Use:   "export <notebook>",
		Short: "Export a submission artifact for transport",
		Long: `Build a submission artifact from a notebook and its observation trace,
and persist it as an opaque envelope. Restoring the envelope later never
re-runs the submission.

Examples:
  # Export to the conventional artifact file (student.pkl)
  pybryt export submission.ipynb --trace trace.json

  # Export to a named file
  pybryt export submission.ipynb --trace trace.json --output alice.pkl

  # Print the base64 form for transport as a string
  pybryt export submission.ipynb --trace trace.json --base64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notebookPath := args[0]

			if _, err := os.Stat(notebookPath); os.IsNotExist(err) {
				return fmt.Errorf("notebook not found: %s", notebookPath)
			}
			if tracePath == "" {
				return fmt.Errorf("--trace is required")
			}

			sub, err := submission.New(notebookPath, execution.NewReplayEngine(tracePath))
			if err != nil {
				return err
			}

			if asString {
				encoded, err := sub.DumpString()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), encoded)
				return nil
			}

			dest := outputPath
			if dest == "" {
				dest = submission.DefaultArtifactFile
			}
			if err := sub.Dump(dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported artifact %s to %s\n", sub.ID(), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Observation trace captured during execution")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: "+submission.DefaultArtifactFile+")")
	cmd.Flags().BoolVar(&asString, "base64", false, "Print the base64 string form instead of writing a file")

	return cmd
}
