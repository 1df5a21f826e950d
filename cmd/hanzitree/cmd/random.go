package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

func newRandomCmd(a *app) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random character",
		Long: `Pick a character uniformly at random. By default the pick comes from the
CJK Unified Ideographs block (U+4E00 to U+9FFF); --from and --to together
choose another range.

Example:
  hanzitree random
  hanzitree random --from U+20000 --to U+2A6DF`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r hanzi.Range
			if from != "" {
				lo, err := hanzi.ParseCodepoint(from)
				if err != nil {
					return err
				}
				hi, err := hanzi.ParseCodepoint(to)
				if err != nil {
					return err
				}
				r = hanzi.Range{Lo: lo, Hi: hi}
			}

			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			c, err := e.RandomIn(ctx, r)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), c, func(w io.Writer) { printCard(w, c) })
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first codepoint of the range")
	cmd.Flags().StringVar(&to, "to", "", "last codepoint of the range")
	cmd.MarkFlagsRequiredTogether("from", "to")
	return cmd
}
