package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format   string
		output   string
		category string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as JSON, CSV or PDF",
		Long: `Export writes the tasks, optionally of one category, to --output or stdout.
The PDF is a printable checklist titled and labelled in the active locale.

Example:
  tasklist export --format pdf --output groceries.pdf --category groceries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(export.Formats, strings.ToLower(format)) {
				return userError(fmt.Errorf("%w %q (want %s)", export.ErrUnknownFormat, format, strings.Join(export.Formats, ", ")))
			}
			filter, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			store, done, err := a.openStore()
			if err != nil {
				return err
			}
			defer done()
			_, bundle, err := a.locales()
			if err != nil {
				return err
			}

			tasks := slices.Collect(store.List(filter))
			write := func(w io.Writer) error {
				return export.New(bundle).Export(w, format, tasks)
			}
			if output == "" {
				if err := write(cmd.OutOrStdout()); err != nil {
					return classify(fmt.Errorf("export %s: %w", format, err))
				}
				return nil
			}
			if err := writeFile(output, write); err != nil {
				return classify(fmt.Errorf("export %s: %w", format, err))
			}
			a.logger.Debug("exported", "format", format, "tasks", len(tasks), "path", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "output format: json, csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&category, "category", "c", "all", "export only this category")
	return cmd
}

// writeFile creates path, fills it with write and closes it. On any failure
// the file is removed so no truncated export is left behind.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
