package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/hanzitree/internal/decomp"
	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// emit writes v as indented JSON when --json is set, and calls styled
// otherwise.
func (a *app) emit(w io.Writer, v any, styled func(io.Writer)) error {
	if a.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
	styled(w)
	return nil
}

// column pads s to width display cells. Han characters are two cells wide.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// printCharacters renders one line per character: grapheme, codepoint,
// pronunciation and meaning.
func printCharacters(w io.Writer, chars []hanzi.Character) {
	if len(chars) == 0 {
		fmt.Fprintln(w, HelpStyle.Render("no characters"))
		return
	}
	for _, c := range chars {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			CharacterStyle.Render(column(c.Grapheme, 2)),
			CodepointStyle.Render(column(c.Codepoint, 8)),
			PronunciationStyle.Render(column(c.Pronunciation, 16)),
			ValueStyle.Render(c.Meaning),
		)
	}
}

// printCard renders the full record of one character.
func printCard(w io.Writer, c hanzi.Character) {
	var b strings.Builder
	b.WriteString(CharacterStyle.Render(c.Grapheme) + "  " + CodepointStyle.Render(c.Codepoint) + "\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(LabelStyle.Render(label) + ValueStyle.Render(value) + "\n")
	}
	row("Pronunciation", c.Pronunciation)
	row("Meaning", c.Meaning)
	row("Radical", c.Radical)
	if c.StrokeCount > 0 {
		row("Strokes", fmt.Sprint(c.StrokeCount))
	}
	row("Frequency", fmt.Sprintf("%g", c.Frequency))

	cons := decomp.Project(c)
	row("Structure", decomp.FormatDecomposition(cons))
	if cons.Structure != hanzi.StructureAtomic {
		first, second := decomp.Positions(cons.Structure)
		row(capitalize(first), cons.Component1)
		row(capitalize(second), cons.Component2)
	}
	if len(c.LeafComponents) > 0 {
		row("Leaves", strings.Join(c.LeafComponents, " "))
	}
	if c.GoodStart {
		row("Good start", "yes")
	}

	fmt.Fprintln(w, BoxStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
