package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/storage"
)

// NewReferencesCommand creates the references command group
func NewReferencesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "references",
		Short: "Manage stored reference implementations",
	}

	cmd.AddCommand(newReferencesListCommand())
	cmd.AddCommand(newReferencesAddCommand())
	cmd.AddCommand(newReferencesDeleteCommand())

	return cmd
}

func newReferencesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemReferenceStoreWithPath(GetReferencesDir())
			if err != nil {
				return err
			}

			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored references")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newReferencesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <definition.yaml>",
		Short: "Compile a YAML reference definition and store it",
		Long: `Compile a YAML reference definition into a reference implementation and
store it under its name, so checks can target it by name.

Example definition:

  name: fibonacci
  annotations:
    - name: fib(5)
      type: int
      value: 5
      group: graded
      success: fib(5) computed
    - name: list result
      type: list
      value: [1, 2, 5]
      when: timestamp >= 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := reference.ReadYAML(args[0])
			if err != nil {
				return err
			}

			store, err := storage.NewFilesystemReferenceStoreWithPath(GetReferencesDir())
			if err != nil {
				return err
			}
			if err := store.Save(ref); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored reference %q (%d annotations)\n",
				ref.Name, len(ref.Annotations))
			return nil
		},
	}
}

func newReferencesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemReferenceStoreWithPath(GetReferencesDir())
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reference %q\n", args[0])
			return nil
		},
	}
}
