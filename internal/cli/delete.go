package cli

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ref>",
		Short: "Remove a task",
		Long:  "Delete removes the task named by ref: a position, an ID or a unique ID prefix.\nTasks after it move up one position.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()
			_, bundle, err := a.locales()
			if err != nil {
				return err
			}
			task, err := resolveTask(store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(task.ID); err != nil {
				return classify(err)
			}
			return a.printTask(cmd, bundle, task)
		},
	}
}
