package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type localeEntry struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Active   bool   `json:"active"`
}

func newLocalesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the available label languages",
		Long:  "Locales lists the built-in bundles and any loaded from the locales/ directory\nnext to config.yaml. The active one is marked with '*'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, active, err := a.locales()
			if err != nil {
				return err
			}
			var entries []localeEntry
			for _, code := range reg.Codes() {
				b, err := reg.Get(code)
				if err != nil {
					return sysError(err)
				}
				entries = append(entries, localeEntry{Code: code, Language: b.Labels.Language, Active: code == active.Code})
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				mark := " "
				if e.Active {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", mark, e.Code, e.Language)
			}
			return w.Flush()
		},
	}
}
