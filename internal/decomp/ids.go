// Package decomp interprets character decompositions: IDS sequences from the
// source corpus and the composition edges stored with each record.
package decomp

import (
	"fmt"
	"strings"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// IDS (Ideographic Description Sequence) operators and the structure each
// one describes. The three-part operators have no two-slot structure.
var idsOperators = map[rune]hanzi.Structure{
	'⿰': hanzi.StructureLeftRight,          // ⿰AB = A on left, B on right
	'⿱': hanzi.StructureTopBottom,          // ⿱AB = A on top, B on bottom
	'⿲': "",                                // ⿲ABC = A left, B middle, C right
	'⿳': "",                                // ⿳ABC = A top, B middle, C bottom
	'⿴': hanzi.StructureSurround,           // ⿴AB = A surrounds B
	'⿵': hanzi.StructureSurroundTop,        // ⿵AB = A surrounds B from top
	'⿶': hanzi.StructureSurroundBottom,     // ⿶AB = A surrounds B from bottom
	'⿷': hanzi.StructureSurroundLeft,       // ⿷AB = A surrounds B from left
	'⿸': hanzi.StructureSurroundUpperLeft,
	'⿹': hanzi.StructureSurroundUpperRight,
	'⿺': hanzi.StructureSurroundLowerLeft,
	'⿻': hanzi.StructureOverlaid, // ⿻AB = A and B overlaid
}

func arity(op rune) int {
	if op == '⿲' || op == '⿳' {
		return 3
	}
	return 2
}

// IDS is the top level of a parsed description sequence. Operands are
// single characters or nested sequences.
type IDS struct {
	Structure hanzi.Structure
	Operands  []string
}

// ParseIDS reads the top-level operator of seq and splits off its operands.
// A sequence with no operator is atomic.
func ParseIDS(seq string) (IDS, error) {
	runes := []rune(strings.TrimSpace(seq))
	if len(runes) == 0 || (len(runes) == 1 && runes[0] == unknownComponent) {
		return IDS{}, fmt.Errorf("%w: empty decomposition", hanzi.ErrInvalidArgument)
	}

	op := runes[0]
	structure, isOp := idsOperators[op]
	if !isOp {
		if len(runes) != 1 {
			return IDS{}, fmt.Errorf("%w: %q has no leading operator", hanzi.ErrInvalidArgument, seq)
		}
		return IDS{Structure: hanzi.StructureAtomic}, nil
	}
	if structure == "" {
		return IDS{}, fmt.Errorf("%w: three-part operator in %q", hanzi.ErrInvalidArgument, seq)
	}

	pos := 1
	ids := IDS{Structure: structure}
	for i := 0; i < arity(op); i++ {
		end, err := skipOperand(runes, pos)
		if err != nil {
			return IDS{}, fmt.Errorf("%w: %q: %v", hanzi.ErrInvalidArgument, seq, err)
		}
		ids.Operands = append(ids.Operands, string(runes[pos:end]))
		pos = end
	}
	if pos != len(runes) {
		return IDS{}, fmt.Errorf("%w: trailing input in %q", hanzi.ErrInvalidArgument, seq)
	}
	return ids, nil
}

// unknownComponent marks a component the source corpus could not identify.
const unknownComponent = '？'

// skipOperand returns the index just past the operand starting at pos.
func skipOperand(runes []rune, pos int) (int, error) {
	return walkOperand(runes, pos, nil)
}

// walkOperand consumes the operand starting at pos, calling leaf for every
// non-operator rune in reading order, and returns the index just past it.
func walkOperand(runes []rune, pos int, leaf func(rune)) (int, error) {
	if pos >= len(runes) {
		return 0, fmt.Errorf("missing operand")
	}
	op := runes[pos]
	if _, isOp := idsOperators[op]; !isOp {
		if leaf != nil {
			leaf(op)
		}
		return pos + 1, nil
	}
	pos++
	for i := 0; i < arity(op); i++ {
		end, err := walkOperand(runes, pos, leaf)
		if err != nil {
			return 0, err
		}
		pos = end
	}
	return pos, nil
}

// ExtractComponents returns the leaf components of an IDS sequence in
// reading order. Unknown components are dropped; a malformed sequence has
// no leaves.
func ExtractComponents(seq string) []string {
	runes := []rune(strings.TrimSpace(seq))
	if len(runes) == 0 {
		return nil
	}

	var leaves []string
	end, err := walkOperand(runes, 0, func(r rune) {
		if r != unknownComponent {
			leaves = append(leaves, string(r))
		}
	})
	if err != nil || end != len(runes) {
		return nil
	}
	return leaves
}

// ParseStructure accepts a structure tag by name (any case) or as a single
// IDS operator.
func ParseStructure(tag string) (hanzi.Structure, error) {
	tag = strings.TrimSpace(tag)
	if s := hanzi.Structure(strings.ToLower(tag)); s.Known() {
		return s, nil
	}
	if r := []rune(tag); len(r) == 1 {
		if s, ok := idsOperators[r[0]]; ok && s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: structure %q", hanzi.ErrInvalidArgument, tag)
}
