package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Long: `Tui opens a full-screen view with the entry field, the category tabs
and the task list.

Keys:
  enter            add the typed task to the selected category
  tab, shift+tab   select the next or previous category
  up, down         move the cursor
  ctrl+e           edit the task under the cursor
  ctrl+d           delete the task under the cursor
  ctrl+y           copy the task text to the clipboard
  f1, f2, f3       Russian, English, Uzbek labels
  ctrl+c           quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()
			reg, bundle, err := a.locales()
			if err != nil {
				return err
			}
			m := tui.New(store, reg, bundle)
			if err := tui.Run(cmd.Context(), m, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
}
