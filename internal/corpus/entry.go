// Package corpus turns decomposition corpus files into a character database.
//
// Entries come from JSON Lines files (one object per line, the Make Me a
// Hanzi dictionary.txt layout included) or YAML files holding a list under
// "characters". Each entry is normalised into a hanzi.Character: the
// codepoint is derived from the grapheme when missing, the structure is read
// from structure_type or the IDS sequence, and readings are filled in from
// the pinyin dictionary when the entry has none.
package corpus

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzitree/internal/decomp"
	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/pinyin"
)

// Entry is one record as it appears in a corpus file.
type Entry struct {
	Character        string   `json:"character" yaml:"character"`
	Unicode          string   `json:"unicode" yaml:"unicode"`
	Radical          string   `json:"radical" yaml:"radical"`
	StrokeCount      int      `json:"stroke_count" yaml:"stroke_count"`
	Pinyin           []string `json:"pinyin" yaml:"pinyin"`
	Definition       string   `json:"definition" yaml:"definition"`
	Frequency        float64  `json:"frequency" yaml:"frequency"`
	GoodStart        bool     `json:"good_start" yaml:"good_start"`
	IDSSequence      string   `json:"ids_sequence" yaml:"ids_sequence"`
	Decomposition    string   `json:"decomposition" yaml:"decomposition"`
	StructureType    string   `json:"structure_type" yaml:"structure_type"`
	DirectComponents []string `json:"direct_components" yaml:"direct_components"`
	AllComponents    []string `json:"all_components" yaml:"all_components"`
}

// sequence returns the IDS sequence, preferring ids_sequence over the
// dictionary's decomposition field. Unknown decompositions read as none.
func (e *Entry) sequence() string {
	seq := strings.TrimSpace(e.IDSSequence)
	if seq == "" {
		seq = strings.TrimSpace(e.Decomposition)
	}
	if seq == "？" || seq == "?" {
		return ""
	}
	return seq
}

// Character converts the entry. p fills in missing readings; it may be nil.
func (e *Entry) Character(p *pinyin.Parser) (hanzi.Character, error) {
	g := strings.TrimSpace(e.Character)
	if err := hanzi.ValidateGrapheme(g); err != nil {
		return hanzi.Character{}, err
	}

	cp, err := hanzi.CodepointOf(g)
	if err != nil {
		return hanzi.Character{}, err
	}
	if e.Unicode != "" {
		if cp, err = hanzi.NormalizeCodepoint(strings.TrimSpace(e.Unicode)); err != nil {
			return hanzi.Character{}, err
		}
	}

	seq := e.sequence()
	structure, comps, err := e.shape(g, seq)
	if err != nil {
		return hanzi.Character{}, fmt.Errorf("%s: %w", g, err)
	}

	c := hanzi.Character{
		Grapheme:      g,
		Codepoint:     cp,
		Radical:       strings.TrimSpace(e.Radical),
		StrokeCount:   e.StrokeCount,
		Pronunciation: strings.Join(e.Pinyin, ", "),
		Meaning:       strings.TrimSpace(e.Definition),
		Frequency:     e.Frequency,
		GoodStart:     e.GoodStart,
		Structure:     structure,
	}
	if len(comps) > 0 {
		c.Component1 = comps[0]
	}
	if len(comps) > 1 {
		c.Component2 = comps[1]
	}
	if structure != hanzi.StructureAtomic {
		c.LeafComponents = cleanComponents(e.AllComponents)
		if len(c.LeafComponents) == 0 {
			c.LeafComponents = decomp.ExtractComponents(seq)
		}
	}
	if c.Pronunciation == "" && p != nil {
		c.Pronunciation = p.Pronunciation(g)
	}
	return c, c.Validate()
}

// shape works out the structure and direct components. An explicit
// structure_type wins over the IDS operator; explicit direct_components win
// over the IDS operands.
func (e *Entry) shape(g, seq string) (hanzi.Structure, []string, error) {
	var (
		structure hanzi.Structure
		ids       decomp.IDS
		haveIDS   bool
	)
	if seq != "" {
		parsed, err := decomp.ParseIDS(seq)
		if err != nil {
			return "", nil, err
		}
		ids, haveIDS = parsed, true
		structure = parsed.Structure
	}
	if tag := strings.TrimSpace(e.StructureType); tag != "" {
		s, err := decomp.ParseStructure(tag)
		if err != nil {
			return "", nil, err
		}
		structure = s
	}

	comps := cleanComponents(e.DirectComponents)
	if len(comps) == 0 && haveIDS {
		for _, op := range ids.Operands {
			if op == "？" || hanzi.ValidateGrapheme(op) != nil {
				return "", nil, fmt.Errorf("%w: operand %q needs direct_components",
					hanzi.ErrInvalidArgument, op)
			}
			comps = append(comps, op)
		}
	}

	// Atomic records in some corpora list themselves as their only component.
	if len(comps) == 1 && comps[0] == g {
		comps = nil
	}
	if structure == "" {
		if len(comps) > 0 {
			return "", nil, fmt.Errorf("%w: components without a structure", hanzi.ErrInvalidArgument)
		}
		structure = hanzi.StructureAtomic
	}
	if len(comps) > 2 {
		return "", nil, fmt.Errorf("%w: %d direct components", hanzi.ErrInvalidArgument, len(comps))
	}
	return structure, comps, nil
}

func cleanComponents(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || s == "？" || s == "?" {
			continue
		}
		out = append(out, s)
	}
	return out
}
