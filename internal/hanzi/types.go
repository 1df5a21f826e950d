// Package hanzi provides the core types of the character composition graph.
package hanzi

import (
	"fmt"
	"strings"
)

// GrowLimit caps the number of results a growth query returns.
const GrowLimit = 16

// Structure describes how Component1 and Component2 combine into a character.
type Structure string

const (
	StructureAtomic             Structure = "atomic"
	StructureLeftRight          Structure = "left-right"      // 1 = left, 2 = right
	StructureTopBottom          Structure = "top-bottom"      // 1 = top, 2 = bottom
	StructureSurround           Structure = "surround"        // 1 surrounds 2 fully
	StructureSurroundTop        Structure = "surround-top"    // open at the bottom
	StructureSurroundBottom     Structure = "surround-bottom" // open at the top
	StructureSurroundLeft       Structure = "surround-left"   // open at the right
	StructureSurroundUpperLeft  Structure = "surround-upper-left"
	StructureSurroundUpperRight Structure = "surround-upper-right"
	StructureSurroundLowerLeft  Structure = "surround-lower-left"
	StructureOverlaid           Structure = "overlaid"
)

var knownStructures = map[Structure]bool{
	StructureAtomic:             true,
	StructureLeftRight:          true,
	StructureTopBottom:          true,
	StructureSurround:           true,
	StructureSurroundTop:        true,
	StructureSurroundBottom:     true,
	StructureSurroundLeft:       true,
	StructureSurroundUpperLeft:  true,
	StructureSurroundUpperRight: true,
	StructureSurroundLowerLeft:  true,
	StructureOverlaid:           true,
}

// Known reports whether s is one of the structure tags the corpus uses.
func (s Structure) Known() bool {
	return knownStructures[s]
}

// IsSurround reports whether s belongs to the surround family.
func (s Structure) IsSurround() bool {
	return strings.Contains(string(s), "surround")
}

// Character is one record of the corpus.
type Character struct {
	Grapheme       string    `json:"grapheme" yaml:"grapheme"`
	Codepoint      string    `json:"codepoint" yaml:"codepoint"`
	Radical        string    `json:"radical,omitempty" yaml:"radical,omitempty"`
	StrokeCount    int       `json:"stroke_count,omitempty" yaml:"stroke_count,omitempty"`
	Pronunciation  string    `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	Meaning        string    `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Frequency      float64   `json:"frequency" yaml:"frequency"`
	GoodStart      bool      `json:"good_start" yaml:"good_start"`
	Structure      Structure `json:"structure" yaml:"structure"`
	Component1     string    `json:"component1,omitempty" yaml:"component1,omitempty"`
	Component2     string    `json:"component2,omitempty" yaml:"component2,omitempty"`
	LeafComponents []string  `json:"leaf_components,omitempty" yaml:"leaf_components,omitempty"`
}

// Slot returns the component held in the given role.
func (c *Character) Slot(r Role) string {
	if r == RoleComponent2 {
		return c.Component2
	}
	return c.Component1
}

// Validate checks the decomposition invariant: an atomic character has no
// components, any other structure has at least Component1.
func (c *Character) Validate() error {
	if _, err := ParseCodepoint(c.Codepoint); err != nil {
		return err
	}
	if !c.Structure.Known() {
		return fmt.Errorf("%w: unknown structure %q for %s", ErrInvalidArgument, c.Structure, c.Codepoint)
	}
	if c.Structure == StructureAtomic {
		if c.Component1 != "" || c.Component2 != "" {
			return fmt.Errorf("%w: atomic %s has components", ErrInvalidArgument, c.Codepoint)
		}
		return nil
	}
	if c.Component1 == "" {
		return fmt.Errorf("%w: %s %s has no component1", ErrInvalidArgument, c.Structure, c.Codepoint)
	}
	return nil
}

// Growth is one result of a growth query: a composed character and the
// component that fills the other slot.
type Growth struct {
	Composed  string `json:"composed"`
	Codepoint string `json:"codepoint"`
	Filler    string `json:"filler"`
}
