package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/storetest"
)

// TestMain ensures no query leaves goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(storetest.Open(t, storetest.Fixture()), opts...)
}

func TestGrowForest(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Grow(context.Background(), "木", "component1", "component2", "left-right")
	require.NoError(t, err)
	assert.Contains(t, got, hanzi.Growth{Composed: "林", Codepoint: "U+6797", Filler: "木"})
}

func TestGrowOrderedByFrequency(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Grow(context.Background(), "木", "component2", "component1", "top-bottom")
	require.NoError(t, err)
	want := []hanzi.Growth{
		{Composed: "森", Codepoint: "U+68EE", Filler: "林"},
		{Composed: "呆", Codepoint: "U+5446", Filler: "口"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Grow mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowSurroundFamily(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Grow(context.Background(), "木", "component2", "component1", "surround")
	require.NoError(t, err)
	want := []hanzi.Growth{
		{Composed: "困", Codepoint: "U+56F0", Filler: "囗"},
		{Composed: "闲", Codepoint: "U+95F2", Filler: "门"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Grow mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowOverlayEitherSlot(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	forward, err := e.Grow(ctx, "木", "component1", "component2", "overlay")
	require.NoError(t, err)
	backward, err := e.Grow(ctx, "木", "component2", "component1", "overlay")
	require.NoError(t, err)

	// 本 holds 木 in component1, 末 in component2
	want := []hanzi.Growth{
		{Composed: "本", Codepoint: "U+672C", Filler: "一"},
		{Composed: "末", Codepoint: "U+672B", Filler: "一"},
	}
	assert.Equal(t, want, forward)
	assert.Equal(t, want, backward)

	union := map[string]int{}
	for _, g := range append(forward, backward...) {
		union[g.Codepoint]++
	}
	for _, c := range storetest.Fixture() {
		if c.Structure == hanzi.StructureOverlaid && (c.Component1 == "木" || c.Component2 == "木") {
			assert.Contains(t, union, c.Codepoint)
		}
	}
	for _, g := range forward {
		assert.Equal(t, 1, countComposed(forward, g.Composed), "duplicate %s", g.Composed)
	}

	fromOne, err := e.Grow(ctx, "一", "component1", "component2", "overlay")
	require.NoError(t, err)
	assert.Equal(t, []hanzi.Growth{
		{Composed: "本", Codepoint: "U+672C", Filler: "木"},
		{Composed: "末", Codepoint: "U+672B", Filler: "木"},
	}, fromOne)
}

func countComposed(gs []hanzi.Growth, composed string) int {
	n := 0
	for _, g := range gs {
		if g.Composed == composed {
			n++
		}
	}
	return n
}

func TestGrowSelfOverlayReturnedOnce(t *testing.T) {
	e := New(storetest.Open(t, []hanzi.Character{
		{Grapheme: "十", Codepoint: "U+5341", Structure: hanzi.StructureAtomic},
		{Grapheme: "卄", Codepoint: "U+5344", Structure: hanzi.StructureOverlaid, Component1: "十", Component2: "十"},
	}))

	got, err := e.Grow(context.Background(), "十", "component1", "component2", "overlay")
	require.NoError(t, err)
	assert.Equal(t, []hanzi.Growth{{Composed: "卄", Codepoint: "U+5344", Filler: "十"}}, got)
}

func TestGrowNoMatch(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Grow(context.Background(), "门", "component1", "component2", "left-right")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGrowInvalidArguments(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name                         string
		char, role, target, relation string
	}{
		{"relation", "木", "component1", "component2", "diagonal"},
		{"role", "木", "component3", "component2", "left-right"},
		{"target", "木", "component1", "left", "left-right"},
		{"empty character", "", "component1", "component2", "left-right"},
		{"two characters", "木木", "component1", "component2", "left-right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Grow(ctx, tt.char, tt.role, tt.target, tt.relation)
			assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)
			assert.Nil(t, got)
		})
	}
}

func TestGrowCappedAndStable(t *testing.T) {
	chars := []hanzi.Character{
		{Grapheme: "木", Codepoint: "U+6728", Structure: hanzi.StructureAtomic},
	}
	// 20 composed characters; pairs share a frequency to exercise tie-breaks
	for i := 0; i < 20; i++ {
		r := rune(0x4E01 + i)
		chars = append(chars, hanzi.Character{
			Grapheme:   string(r),
			Codepoint:  hanzi.FormatCodepoint(r),
			Frequency:  float64(i / 2),
			Structure:  hanzi.StructureLeftRight,
			Component1: "木",
			Component2: "木",
		})
	}
	e := New(storetest.Open(t, chars))
	ctx := context.Background()

	got, err := e.Grow(ctx, "木", "component1", "component2", "left-right")
	require.NoError(t, err)
	require.Len(t, got, hanzi.GrowLimit)

	// frequencies 9,9,8,8,...; within a pair the lower codepoint comes first
	assert.Equal(t, hanzi.FormatCodepoint(0x4E01+18), got[0].Codepoint)
	assert.Equal(t, hanzi.FormatCodepoint(0x4E01+19), got[1].Codepoint)
	assert.Equal(t, hanzi.FormatCodepoint(0x4E01+16), got[2].Codepoint)

	again, err := e.Grow(ctx, "木", "component1", "component2", "left-right")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAvailability(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Availability(context.Background(), "木")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"grow-right":    true,
		"grow-left":     true,
		"grow-above":    true,
		"grow-below":    true,
		"grow-surround": false,
		"grow-overlay":  true,
	}, got)

	got, err = e.Availability(context.Background(), "门")
	require.NoError(t, err)
	assert.True(t, got["grow-surround"])
	assert.False(t, got["grow-right"])
}

func TestAvailabilityMatchesGrow(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	for _, c := range storetest.Fixture() {
		avail, err := e.Availability(ctx, c.Grapheme)
		require.NoError(t, err)
		require.Len(t, avail, len(hanzi.Directions))

		for _, d := range hanzi.Directions {
			grown, err := e.Grow(ctx, c.Grapheme, string(d.Role), string(d.Target), d.Relation.Name)
			require.NoError(t, err)
			assert.Equal(t, len(grown) > 0, avail[d.ID], "%s %s", c.Grapheme, d.ID)

			byDirection, err := e.GrowDirection(ctx, c.Grapheme, d.ID)
			require.NoError(t, err)
			assert.Equal(t, grown, byDirection)
		}
	}
}

func TestAvailabilityInvalidCharacter(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Availability(context.Background(), "木林")
	assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)
}

func TestGrowDirectionUnknown(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.GrowDirection(context.Background(), "木", "grow-diagonal")
	assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	for _, want := range storetest.Fixture() {
		got, err := e.Lookup(ctx, want.Codepoint)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		got, err = e.Lookup(ctx, want.Grapheme)
		require.NoError(t, err)
		assert.Equal(t, want.Codepoint, got.Codepoint)
	}

	_, err := e.Lookup(ctx, "U+ZZZZ")
	assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)

	_, err = e.Lookup(ctx, " U+6797 ")
	assert.ErrorIs(t, err, hanzi.ErrInvalidArgument)

	_, err = e.Lookup(ctx, "水")
	assert.ErrorIs(t, err, hanzi.ErrNotFound)
}

func TestConstituents(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Constituents(context.Background(), "林")
	require.NoError(t, err)
	assert.Equal(t, hanzi.StructureLeftRight, got.Structure)
	assert.Equal(t, "木", got.Component1)
	assert.Equal(t, "木", got.Component2)
}

func TestRandom(t *testing.T) {
	e := newTestEngine(t, WithPicker(rand.New(rand.NewPCG(7, 7))))

	for i := 0; i < 50; i++ {
		c, err := e.Random(context.Background())
		require.NoError(t, err)
		cp, err := hanzi.ParseCodepoint(c.Codepoint)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cp, hanzi.CoreRange.Lo)
		assert.LessOrEqual(t, cp, hanzi.CoreRange.Hi)
	}
}

func TestRandomEmptyCorpus(t *testing.T) {
	e := New(storetest.Open(t, nil))
	_, err := e.Random(context.Background())
	assert.ErrorIs(t, err, hanzi.ErrEmptyCorpus)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	got, err := e.Search(ctx, "mu", 10)
	require.NoError(t, err)
	assert.Contains(t, graphemes(got), "木")

	got, err = e.Search(ctx, "Mù", 10)
	require.NoError(t, err)
	assert.Contains(t, graphemes(got), "木")

	got, err = e.Search(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = e.Search(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchLimits(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, WithSearchLimits(2, 3))

	got, err := e.Search(ctx, "e", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = e.Search(ctx, "e", 100)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestTopStarts(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.TopStarts(context.Background())
	require.NoError(t, err)

	var want []string
	for _, c := range storetest.Fixture() {
		if c.GoodStart {
			want = append(want, c.Grapheme)
		}
	}
	assert.ElementsMatch(t, want, graphemes(got))
	assert.Equal(t, []string{"一", "口", "木", "门"}, graphemes(got))
}

func TestAudit(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Audit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Violation{
		{Codepoint: "U+5B89", Grapheme: "安", Problem: "component 宀 is not in the corpus"},
		{Codepoint: "U+5B89", Grapheme: "安", Problem: "component 女 is not in the corpus"},
	}, got)
}

func TestConcurrentQueries(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Availability(ctx, "木"); err != nil {
				errs <- err
			}
			if _, err := e.Grow(ctx, "木", "component1", "component2", "overlay"); err != nil {
				errs <- err
			}
			if _, err := e.Random(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestStoreFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := storetest.Open(t, storetest.Fixture())
	e := New(s, WithLogger(zap.New(core)))
	require.NoError(t, s.Close())

	_, err := e.Grow(context.Background(), "木", "component1", "component2", "left-right")
	require.ErrorIs(t, err, hanzi.ErrStoreUnavailable)

	_, err = e.Availability(context.Background(), "木")
	require.ErrorIs(t, err, hanzi.ErrStoreUnavailable)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "grow", warnings[0].ContextMap()["op"])
	assert.Equal(t, "availability", warnings[1].ContextMap()["op"])
}

func TestCanceledContext(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Grow(ctx, "木", "component1", "component2", "left-right")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, hanzi.ErrStoreUnavailable)
}

func graphemes(cs []hanzi.Character) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Grapheme
	}
	return out
}
