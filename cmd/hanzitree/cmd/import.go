package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/f3rmion/hanzitree/internal/config"
	"github.com/f3rmion/hanzitree/internal/corpus"
)

func newImportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Build the corpus database from corpus files",
		Long: `Import one or more corpus files into a new database. Files ending in
.yaml or .yml are read as YAML with a top-level "characters" list; anything
else is read as JSON Lines, one record per line.

Records that cannot be converted are skipped with a warning. The target
database must not exist yet.

Example:
  hanzitree import data/dictionary.jsonl
  hanzitree import base.jsonl extra.yaml --output ./hanzi.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst := output
			if dst == "" {
				dst = a.cfg.Database
				dir, err := config.GetConfigDir()
				if err != nil {
					return err
				}
				if err := config.EnsureConfigDir(dir); err != nil {
					return fmt.Errorf("creating config directory: %w", err)
				}
			}

			stats, err := corpus.NewImporter(a.logger).Import(cmd.Context(), dst, args...)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), stats, func(w io.Writer) {
				fmt.Fprintf(w, "%s %d characters into %s\n",
					TitleStyle.Render("Imported"), stats.Imported, dst)
				if stats.Skipped > 0 || stats.Malformed > 0 {
					fmt.Fprintln(w, HelpStyle.Render(fmt.Sprintf("skipped %d records and %d malformed lines",
						stats.Skipped, stats.Malformed)))
				}
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "database to create (default from config)")
	return cmd
}
