package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

func newGrowCmd(a *app) *cobra.Command {
	var role, target, relation, direction string

	cmd := &cobra.Command{
		Use:   "grow <character>",
		Short: "List characters built from a character",
		Long: fmt.Sprintf(`Find the characters that contain <character> in the given slot under a
relation, most frequent first, and show what fills the other slot. At most
%d results are returned.

Relations: %s
Directions: %s

Example:
  hanzitree grow 木 --role component1 --target component2 --relation left-right
  hanzitree grow 木 --direction grow-surround`,
			hanzi.GrowLimit,
			strings.Join(hanzi.RelationNames(), ", "),
			strings.Join(directionIDs(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}

			var out []hanzi.Growth
			if direction != "" {
				out, err = e.GrowDirection(ctx, args[0], direction)
			} else {
				out, err = e.Grow(ctx, args[0], role, target, relation)
			}
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), out, func(w io.Writer) { printGrowths(w, args[0], out) })
		},
	}
	cmd.Flags().StringVar(&role, "role", string(hanzi.RoleComponent1), "slot the character occupies")
	cmd.Flags().StringVar(&target, "target", string(hanzi.RoleComponent2), "slot to preview")
	cmd.Flags().StringVar(&relation, "relation", hanzi.RelationLeftRight.Name, "structural relation")
	cmd.Flags().StringVar(&direction, "direction", "", "growth direction; overrides role, target and relation")
	return cmd
}

func printGrowths(w io.Writer, from string, out []hanzi.Growth) {
	if len(out) == 0 {
		fmt.Fprintln(w, HelpStyle.Render("nothing grows from "+from))
		return
	}
	for _, g := range out {
		fmt.Fprintf(w, "%s  %s  %s\n",
			CharacterStyle.Render(column(g.Composed, 2)),
			CodepointStyle.Render(column(g.Codepoint, 8)),
			ValueStyle.Render("+ "+g.Filler),
		)
	}
}

func newAvailabilityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "availability <character>",
		Short: "Show which growth directions lead anywhere",
		Long: `Report, for each of the six growth directions, whether at least one
character can be grown from <character> that way.

Example:
  hanzitree availability 木`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.engine(ctx)
			if err != nil {
				return err
			}
			avail, err := e.Availability(ctx, args[0])
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), avail, func(w io.Writer) {
				for _, d := range hanzi.Directions {
					mark := NoStyle.Render("no")
					if avail[d.ID] {
						mark = YesStyle.Render("yes")
					}
					fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(d.ID), mark)
				}
			})
		},
	}
}

func directionIDs() []string {
	ids := make([]string, len(hanzi.Directions))
	for i, d := range hanzi.Directions {
		ids[i] = d.ID
	}
	return ids
}
