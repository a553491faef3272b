package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/check"
	"github.com/ZabehCruz/pybryt/pkg/execution"
	"github.com/ZabehCruz/pybryt/pkg/storage"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var (
		refs       []string
		tracePath  string
		group      string
		outputPath string
		traceFiles []string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "check <notebook>",
		Short: "Check a submission notebook against reference implementations",
		Long: `Check a submission notebook's memory footprint against one or more
reference implementations.

The footprint is replayed from the observation trace captured when the
submission ran under instrumentation. References are resolved first against
the stored references directory, then as file paths.

Examples:
  # Check against a stored reference
  pybryt check submission.ipynb --trace trace.json --ref fibonacci

  # Check against several references, graded annotations only
  pybryt check submission.ipynb --trace trace.json --ref fibonacci --ref primes --group graded

  # Record the artifact and results in the check history
  pybryt check submission.ipynb --trace trace.json --ref fibonacci --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notebookPath := args[0]

			if _, err := os.Stat(notebookPath); os.IsNotExist(err) {
				return fmt.Errorf("notebook not found: %s", notebookPath)
			}
			if len(refs) == 0 {
				return fmt.Errorf("at least one --ref is required")
			}
			if tracePath == "" {
				return fmt.Errorf("--trace is required")
			}

			store, err := storage.NewFilesystemReferenceStoreWithPath(GetReferencesDir())
			if err != nil {
				return err
			}

			engine := execution.NewReplayEngine(tracePath)
			opts := []submission.Option{submission.WithExtraTraceTargets(traceFiles...)}
			if outputPath != "" {
				opts = append(opts, submission.WithOutput(outputPath))
			}

			sub, err := submission.New(notebookPath, engine, opts...)
			if err != nil {
				return err
			}

			outcome, err := check.Dispatch(sub, check.IdentifierList(refs...), group, store)
			if err != nil {
				return err
			}

			for i, result := range outcome.Results() {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Report())
			}

			if save {
				repo, err := storage.NewSQLiteHistoryRepositoryWithPath(GetDatabasePath())
				if err != nil {
					return err
				}
				defer func() { _ = repo.Close() }()

				if err := repo.SaveArtifact(sub); err != nil {
					return err
				}
				for _, result := range outcome.Results() {
					if err := repo.SaveResult(sub.ID(), result); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nRecorded artifact %s\n", sub.ID())
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&refs, "ref", "r", nil, "Reference name or file path (repeatable)")
	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "Observation trace captured during execution")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Only run annotations in this group")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the executed notebook to this path")
	cmd.Flags().StringArrayVar(&traceFiles, "trace-file", nil, "Additional file to trace inside during execution (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Record the artifact and results in the check history")

	return cmd
}
