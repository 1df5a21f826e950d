// Package storetest builds small corpus databases for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/store"
)

// Fixture returns a small corpus around 木 that exercises every relation.
// 安 deliberately references components that are not in the corpus.
func Fixture() []hanzi.Character {
	return []hanzi.Character{
		{Grapheme: "一", Codepoint: "U+4E00", Pronunciation: "yī", Meaning: "one", Frequency: 99, GoodStart: true, Structure: hanzi.StructureAtomic},
		{Grapheme: "口", Codepoint: "U+53E3", Pronunciation: "kǒu", Meaning: "mouth", Frequency: 95, GoodStart: true, Structure: hanzi.StructureAtomic},
		{Grapheme: "木", Codepoint: "U+6728", Radical: "木", StrokeCount: 4, Pronunciation: "mù", Meaning: "tree, wood", Frequency: 90, GoodStart: true, Structure: hanzi.StructureAtomic},
		{Grapheme: "安", Codepoint: "U+5B89", Pronunciation: "ān", Meaning: "peace, quiet", Frequency: 88, Structure: hanzi.StructureTopBottom, Component1: "宀", Component2: "女"},
		{Grapheme: "本", Codepoint: "U+672C", Pronunciation: "běn", Meaning: "root, origin", Frequency: 85, Structure: hanzi.StructureOverlaid, Component1: "木", Component2: "一"},
		{Grapheme: "门", Codepoint: "U+95E8", Pronunciation: "mén", Meaning: "door, gate", Frequency: 80, GoodStart: true, Structure: hanzi.StructureAtomic},
		{Grapheme: "林", Codepoint: "U+6797", Radical: "木", StrokeCount: 8, Pronunciation: "lín", Meaning: "forest, grove", Frequency: 70, Structure: hanzi.StructureLeftRight, Component1: "木", Component2: "木"},
		{Grapheme: "休", Codepoint: "U+4F11", Pronunciation: "xiū", Meaning: "rest", Frequency: 60, Structure: hanzi.StructureLeftRight, Component1: "亻", Component2: "木"},
		{Grapheme: "困", Codepoint: "U+56F0", Pronunciation: "kùn", Meaning: "trapped, sleepy", Frequency: 50, Structure: hanzi.StructureSurround, Component1: "囗", Component2: "木"},
		{Grapheme: "闲", Codepoint: "U+95F2", Pronunciation: "xián", Meaning: "idle", Frequency: 45, Structure: hanzi.StructureSurroundTop, Component1: "门", Component2: "木"},
		{Grapheme: "森", Codepoint: "U+68EE", Radical: "木", StrokeCount: 12, Pronunciation: "sēn", Meaning: "dense forest", Frequency: 40, Structure: hanzi.StructureTopBottom, Component1: "林", Component2: "木", LeafComponents: []string{"木", "木", "木"}},
		{Grapheme: "呆", Codepoint: "U+5446", Pronunciation: "dāi", Meaning: "dull, stay", Frequency: 35, Structure: hanzi.StructureTopBottom, Component1: "口", Component2: "木"},
		{Grapheme: "末", Codepoint: "U+672B", Pronunciation: "mò", Meaning: "tip, end", Frequency: 30, Structure: hanzi.StructureOverlaid, Component1: "一", Component2: "木"},
		{Grapheme: "杏", Codepoint: "U+674F", Pronunciation: "xìng", Meaning: "apricot", Frequency: 20, Structure: hanzi.StructureTopBottom, Component1: "木", Component2: "口"},
		{Grapheme: "亻", Codepoint: "U+4EBB", Pronunciation: "rén", Meaning: "person radical", Frequency: 10, Structure: hanzi.StructureAtomic},
		{Grapheme: "囗", Codepoint: "U+56D7", Pronunciation: "wéi", Meaning: "enclosure", Frequency: 5, Structure: hanzi.StructureAtomic},
		{Grapheme: "𠂉", Codepoint: "U+20089", Meaning: "knife component", Frequency: 1, Structure: hanzi.StructureAtomic},
	}
}

// Build writes chars to a fresh database in a temp dir and returns its path.
func Build(t testing.TB, chars []hanzi.Character) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.db")
	if err := store.Build(context.Background(), path, chars); err != nil {
		t.Fatalf("building corpus: %v", err)
	}
	return path
}

// Open builds chars and opens the result read-only. The store is closed
// when the test ends.
func Open(t testing.TB, chars []hanzi.Character) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), Build(t, chars))
	if err != nil {
		t.Fatalf("opening corpus: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
