package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// Violation is a corpus record that breaks the decomposition invariant or
// points at a component the corpus does not contain.
type Violation struct {
	Codepoint string `json:"codepoint"`
	Grapheme  string `json:"grapheme"`
	Problem   string `json:"problem"`
}

// Audit scans the whole corpus and reports invalid records and dangling
// component references, in codepoint order.
func (e *Engine) Audit(ctx context.Context) ([]Violation, error) {
	known := make(map[string]bool)
	candidates, err := e.store.Scan(ctx, func(c hanzi.Character) bool {
		known[c.Grapheme] = true
		return c.Structure != hanzi.StructureAtomic || c.Validate() != nil
	})
	if err != nil {
		return nil, e.fail("audit", err)
	}

	var out []Violation
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			out = append(out, Violation{Codepoint: c.Codepoint, Grapheme: c.Grapheme, Problem: err.Error()})
			continue
		}
		for _, comp := range []string{c.Component1, c.Component2} {
			if comp != "" && !known[comp] {
				out = append(out, Violation{
					Codepoint: c.Codepoint,
					Grapheme:  c.Grapheme,
					Problem:   fmt.Sprintf("component %s is not in the corpus", comp),
				})
			}
		}
	}
	e.logger.Info("audit finished", zap.Int("graphemes", len(known)), zap.Int("violations", len(out)))
	return out, nil
}
