package decomp

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// Positions describes where each slot sits for a structure.
func Positions(s hanzi.Structure) (first, second string) {
	switch {
	case s == hanzi.StructureLeftRight:
		return "left", "right"
	case s == hanzi.StructureTopBottom:
		return "top", "bottom"
	case s.IsSurround():
		return "outer", "inner"
	default:
		return "component 1", "component 2"
	}
}

// FormatDecomposition returns a human-readable decomposition description.
func FormatDecomposition(c Constituents) string {
	if c.Structure == hanzi.StructureAtomic {
		return "atomic"
	}

	parts := []string{c.Component1}
	if c.Component2 != "" {
		parts = append(parts, c.Component2)
	}
	return fmt.Sprintf("%s: %s", c.Structure, strings.Join(parts, " + "))
}
