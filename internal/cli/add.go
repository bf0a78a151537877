package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/session"
)

func newAddCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to a category",
		Long: `Add joins its arguments into one task and files it under --category.
Text longer than 55 characters is cut. Adding the same text twice to the
same category is refused.

Example:
  tasklist add --category groceries Milk
  tasklist add -c payments Pay rent`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()
			reg, bundle, err := a.locales()
			if err != nil {
				return err
			}

			sess := session.New(store, reg, bundle, session.NewLineDialogs(cmd.InOrStdin(), cmd.ErrOrStderr()))
			if err := sess.SelectCategory(c); err != nil {
				return userError(err)
			}
			task, err := sess.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				if bundle.Error(err) != "" {
					return &exitError{code: exitUserError, err: err, reported: true}
				}
				return classify(err)
			}

			return a.printTask(cmd, bundle, task)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category: groceries, college or payments")
	return cmd
}
