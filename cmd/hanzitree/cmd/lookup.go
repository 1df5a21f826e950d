package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <character|U+XXXX>",
		Short: "Show a character and its decomposition",
		Long: `Look up one character by grapheme or by codepoint and display its
pronunciation, meaning, structure and components.

Example:
  hanzitree lookup 林
  hanzitree lookup U+6797`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			c, err := e.Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), c, func(w io.Writer) { printCard(w, c) })
		},
	}
}
