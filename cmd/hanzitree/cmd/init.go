package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/hanzitree/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Create config.yaml in your config directory (or at --config) holding the
default settings, so they can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			path := a.cfgFile
			if path == "" {
				path = filepath.Join(dir, "config.yaml")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
			}
			if err := config.EnsureConfigDir(filepath.Dir(path)); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := config.Save(path, config.Defaults(dir)); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Created %s\n\n", path)
			fmt.Fprintln(w, "Next steps:")
			fmt.Fprintln(w, "  1. Run 'hanzitree import <corpus.jsonl>' to build the database")
			fmt.Fprintln(w, "  2. Run 'hanzitree lookup 木' to test a character lookup")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}
