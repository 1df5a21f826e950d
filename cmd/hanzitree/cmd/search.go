package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search characters by grapheme, pronunciation or meaning",
		Long: `Search the corpus for characters whose grapheme, pronunciation or meaning
contains the query. Pinyin matches with or without tone marks, and with
tone numbers ("mu", "mù" and "mu4" all find 木).

Example:
  hanzitree search mu
  hanzitree search forest --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			out, err := e.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), out, func(w io.Writer) { printCharacters(w, out) })
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	return cmd
}

func newStartsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "starts",
		Short: "List good starting characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			out, err := e.TopStarts(ctx)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), out, func(w io.Writer) {
				printCharacters(w, out)
			})
		},
	}
}
