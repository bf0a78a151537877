package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// listEntry is one row of list --json output.
type listEntry struct {
	Position int `json:"position"`
	types.Task
}

func newListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally of one category",
		Long: `List prints the stored tasks in insertion order. The position column is
the reference accepted by update and delete, as is any unique ID prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()

			entries := []listEntry{}
			for pos, t := range store.Entries(filter) {
				entries = append(entries, listEntry{Position: pos, Task: t})
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			_, bundle, err := a.locales()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			title := bundle.Labels.AllTasks
			if filter != types.CategoryAll {
				title = bundle.Category(filter)
			}
			fmt.Fprintln(out, title)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tITEM\tCATEGORY")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Position, e.ID, e.Item, bundle.Category(e.Category))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			bundle.Printer().Fprintf(out, "%d / %d\n", len(entries), store.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(types.CategoryAll), "filter: all, groceries, college or payments")
	return cmd
}
