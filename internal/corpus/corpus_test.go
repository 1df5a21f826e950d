package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/pinyin"
	"github.com/f3rmion/hanzitree/internal/store"
)

func TestEntryCharacter(t *testing.T) {
	p := pinyin.NewParser()

	tests := []struct {
		name  string
		entry Entry
		want  hanzi.Character
	}{
		{
			name:  "ids operands become components",
			entry: Entry{Character: "林", Decomposition: "⿰木木", Pinyin: []string{"lín"}},
			want: hanzi.Character{
				Grapheme: "林", Codepoint: "U+6797", Pronunciation: "lín",
				Structure: hanzi.StructureLeftRight, Component1: "木", Component2: "木",
				LeafComponents: []string{"木", "木"},
			},
		},
		{
			name: "explicit fields win",
			entry: Entry{
				Character: "森", IDSSequence: "⿱林木", StructureType: "Top-Bottom",
				DirectComponents: []string{"林", "木"}, AllComponents: []string{"木", "木", "木"},
				Pinyin: []string{"sēn"},
			},
			want: hanzi.Character{
				Grapheme: "森", Codepoint: "U+68EE", Pronunciation: "sēn",
				Structure: hanzi.StructureTopBottom, Component1: "林", Component2: "木",
				LeafComponents: []string{"木", "木", "木"},
			},
		},
		{
			name:  "unknown decomposition is atomic",
			entry: Entry{Character: "木", Decomposition: "？", Pinyin: []string{"mù"}},
			want:  hanzi.Character{Grapheme: "木", Codepoint: "U+6728", Pronunciation: "mù", Structure: hanzi.StructureAtomic},
		},
		{
			name:  "self component dropped",
			entry: Entry{Character: "亻", StructureType: "atomic", DirectComponents: []string{"亻"}, Pinyin: []string{"rén"}},
			want:  hanzi.Character{Grapheme: "亻", Codepoint: "U+4EBB", Pronunciation: "rén", Structure: hanzi.StructureAtomic},
		},
		{
			name:  "ids operator as structure tag",
			entry: Entry{Character: "困", StructureType: "⿴", DirectComponents: []string{"囗", "木"}, Pinyin: []string{"kùn"}},
			want: hanzi.Character{
				Grapheme: "困", Codepoint: "U+56F0", Pronunciation: "kùn",
				Structure: hanzi.StructureSurround, Component1: "囗", Component2: "木",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.Character(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryCharacterFillsPronunciation(t *testing.T) {
	e := Entry{Character: "口"}
	got, err := e.Character(pinyin.NewParser())
	require.NoError(t, err)
	assert.Contains(t, got.Pronunciation, "kǒu")

	got, err = e.Character(nil)
	require.NoError(t, err)
	assert.Empty(t, got.Pronunciation)
}

func TestEntryCharacterRejects(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"empty", Entry{}},
		{"two graphemes", Entry{Character: "木木"}},
		{"bad codepoint", Entry{Character: "木", Unicode: "6728"}},
		{"nested operand", Entry{Character: "品", Decomposition: "⿱口⿰口口"}},
		{"unknown operand", Entry{Character: "林", Decomposition: "⿰？木"}},
		{"three-part operator", Entry{Character: "鼎", Decomposition: "⿲丨目丨"}},
		{"unknown structure", Entry{Character: "林", StructureType: "diagonal", DirectComponents: []string{"木", "木"}}},
		{"components without structure", Entry{Character: "林", DirectComponents: []string{"木", "木"}}},
		{"too many components", Entry{Character: "林", StructureType: "left-right", DirectComponents: []string{"木", "木", "木"}}},
		{"structure without components", Entry{Character: "林", StructureType: "left-right"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.entry.Character(nil)
			assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)
		})
	}
}

func TestLoadFileJSONL(t *testing.T) {
	entries, malformed, err := LoadFile(filepath.Join("testdata", "dictionary.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 1, malformed)
	assert.Len(t, entries, 7)
	assert.Equal(t, "木", entries[0].Character)
}

func TestLoadFileYAML(t *testing.T) {
	entries, malformed, err := LoadFile(filepath.Join("testdata", "extra.yaml"))
	require.NoError(t, err)
	assert.Zero(t, malformed)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"亻", "木"}, entries[0].DirectComponents)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	dst := filepath.Join(t.TempDir(), "hanzi.db")

	stats, err := NewImporter(zap.New(core)).Import(ctx, dst,
		filepath.Join("testdata", "dictionary.jsonl"),
		filepath.Join("testdata", "extra.yaml"),
	)
	require.NoError(t, err)
	assert.Equal(t, Stats{Imported: 7, Skipped: 2, Malformed: 1}, stats)
	assert.Equal(t, 1, logs.FilterMessage("skipping corpus entry").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping duplicate codepoint").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipped malformed lines").Len())

	s, err := store.Open(ctx, dst)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	sen, err := s.GetByGrapheme(ctx, "森")
	require.NoError(t, err)
	assert.Equal(t, "林", sen.Component1)
	assert.Equal(t, []string{"木", "木", "木"}, sen.LeafComponents)

	kou, err := s.GetByGrapheme(ctx, "口")
	require.NoError(t, err)
	assert.Contains(t, kou.Pronunciation, "kǒu")

	edges, err := s.Edges(ctx, store.EdgeQuery{
		Match:     hanzi.RelationLeftRight.Match,
		Component: "亻",
		Slot:      hanzi.RoleComponent1,
		Filler:    hanzi.RoleComponent2,
		Limit:     hanzi.GrowLimit,
	})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "休", edges[0].Composed)
}

func TestImportNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := NewImporter(nil).Import(context.Background(), filepath.Join(dir, "hanzi.db"))
	assert.ErrorIs(t, err, hanzi.ErrEmptyCorpus)
}
