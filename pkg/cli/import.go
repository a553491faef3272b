package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/storage"
	"github.com/ZabehCruz/pybryt/pkg/submission"
)

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var (
		fromString string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "import [artifact-file]",
		Short: "Import a submission artifact envelope",
		Long: `Restore a submission artifact from a persisted envelope and show its
summary. Importing never re-runs the submission's code.

Examples:
  # Inspect an artifact file
  pybryt import student.pkl

  # Restore from the base64 string form
  pybryt import --base64 "$(cat encoded.txt)"

  # Record the artifact in the check history
  pybryt import student.pkl --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sub *submission.Submission
			var err error

			switch {
			case fromString != "":
				sub, err = submission.LoadString(strings.TrimSpace(fromString))
			case len(args) == 1:
				sub, err = submission.Load(args[0])
			default:
				return fmt.Errorf("an artifact file or --base64 is required")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Artifact:     %s\n", sub.ID())
			if sub.Path() != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Notebook:     %s\n", sub.Path())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Steps:        %d\n", sub.Steps())
			fmt.Fprintf(cmd.OutOrStdout(), "Observations: %d\n", sub.Footprint().Len())
			if imports := sub.Footprint().Imports(); len(imports) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Imports:      %s\n", strings.Join(imports, ", "))
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
				fmt.Fprintln(cmd.OutOrStdout(), "\nRecorded in check history")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromString, "base64", "", "Restore from the base64 string form instead of a file")
	cmd.Flags().BoolVar(&save, "save", false, "Record the artifact in the check history")

	return cmd
}
