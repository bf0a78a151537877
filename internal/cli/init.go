package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/paths"
)

type initResult struct {
	ConfigFile string `json:"config_file"`
	DataDir    string `json:"data_dir"`
	Backend    string `json:"backend"`
	Tasks      int    `json:"tasks"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tasklist storage",
		Long:  "Create the configuration file and data directory, then open the storage backend once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.storageConfig()
			if err != nil {
				return classify(err)
			}
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()

			res := initResult{
				ConfigFile: paths.ConfigFile(a.configDir),
				DataDir:    cfg.DataDir,
				Backend:    cfg.Backend,
				Tasks:      store.Len(),
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tasklist initialized")
			fmt.Fprintln(out, "  config: ", res.ConfigFile)
			fmt.Fprintln(out, "  data:   ", res.DataDir)
			fmt.Fprintln(out, "  backend:", res.Backend)
			return nil
		},
	}
}
