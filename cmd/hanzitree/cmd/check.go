package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Audit the corpus for broken decompositions",
		Long: `Scan every record and report those that break the decomposition rules or
name a component the corpus does not contain. Exits non-zero when any
problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			violations, err := e.Audit(ctx)
			if err != nil {
				return err
			}

			err = a.emit(cmd.OutOrStdout(), violations, func(w io.Writer) {
				if len(violations) == 0 {
					fmt.Fprintln(w, YesStyle.Render("corpus is consistent"))
					return
				}
				for _, v := range violations {
					fmt.Fprintf(w, "%s  %s  %s\n",
						CharacterStyle.Render(column(v.Grapheme, 2)),
						CodepointStyle.Render(column(v.Codepoint, 8)),
						ValueStyle.Render(v.Problem),
					)
				}
			})
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				return fmt.Errorf("%d problems found", len(violations))
			}
			return nil
		},
	}
}
