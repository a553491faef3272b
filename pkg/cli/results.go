package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/domain/types"
	"github.com/ZabehCruz/pybryt/pkg/storage"
)

// NewResultsCommand creates the results command
func NewResultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results [artifact-id]",
		Short: "Show recorded artifacts and their check results",
		Long: `Without arguments, list recorded artifacts, most recent first. With an
artifact ID, show that artifact's check results.

Examples:
  # List recorded artifacts
  pybryt results

  # Show one artifact's results
  pybryt results 2f1c9a0e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewSQLiteHistoryRepositoryWithPath(GetDatabasePath())
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			if len(args) == 0 {
				return listArtifacts(cmd, repo)
			}
			return listResults(cmd, repo, types.ArtifactID(args[0]))
		},
	}

	return cmd
}

func listArtifacts(cmd *cobra.Command, repo *storage.SQLiteHistoryRepository) error {
	records, err := repo.ListArtifacts()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded artifacts")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ARTIFACT\tNOTEBOOK\tSTEPS\tRECORDED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			rec.ID, rec.NBPath, rec.Steps, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func listResults(cmd *cobra.Command, repo *storage.SQLiteHistoryRepository, id types.ArtifactID) error {
	records, err := repo.ListResults(id)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded results for this artifact")
		return nil
	}

	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "REFERENCE: %s\n", rec.ReferenceName)
		if rec.Group != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "GROUP: %s\n", rec.Group)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SATISFIED: %t\n", rec.Correct)
		for _, msg := range rec.Messages {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", msg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "RECORDED: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
