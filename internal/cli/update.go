package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/session"
)

func newUpdateCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "update <ref> [text...]",
		Short: "Replace the text or category of a task",
		Long: `Update replaces the text of the task named by ref (a position, an ID or a
unique ID prefix). Without text it asks for the new text on stdin, showing
the current one; an empty answer or end of input keeps the task as it is.
Updates may produce duplicates.

Example:
  tasklist update 0 Oat milk
  tasklist update 0190a3f2 --category payments
  tasklist update 2`,
		Args: cobra.MinimumNArgs(1),
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
			task, err := resolveTask(store, args[0])
			if err != nil {
				return err
			}

			item := strings.Join(args[1:], " ")
			newCategory := task.Category
			if cmd.Flags().Changed("category") {
				if newCategory, err = parseCategoryFlag(category); err != nil {
					return err
				}
			}

			if item == "" {
				sess := session.New(store, reg, bundle, session.NewLineDialogs(cmd.InOrStdin(), cmd.ErrOrStderr()))
				changed, err := sess.Update(cmd.Context(), task.ID)
				if err != nil {
					return classify(err)
				}
				if !changed && newCategory == task.Category {
					a.logger.Debug("update cancelled", "id", task.ID)
					return a.printTask(cmd, bundle, task)
				}
				if task, err = store.Get(task.ID); err != nil {
					return classify(err)
				}
				item = task.Item
			}

			if err := store.Update(task.ID, item, newCategory); err != nil {
				return classify(err)
			}
			task, err = store.Get(task.ID)
			if err != nil {
				return classify(err)
			}
			return a.printTask(cmd, bundle, task)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "move the task to this category")
	return cmd
}
