// Package engine answers navigational queries over the composition graph.
//
// Every operation is a read-only function of its inputs and the immutable
// corpus, so an Engine can be shared by any number of goroutines.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/hanzitree/internal/decomp"
	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/store"
)

// Store is the character store the engine queries.
type Store interface {
	decomp.Reader
	GetByCodepoint(ctx context.Context, cp string) (hanzi.Character, error)
	SampleRandom(ctx context.Context, pick store.Picker, r hanzi.Range) (hanzi.Character, error)
	Scan(ctx context.Context, pred func(hanzi.Character) bool) ([]hanzi.Character, error)
	Search(ctx context.Context, query string, limit int) ([]hanzi.Character, error)
	GoodStarts(ctx context.Context) ([]hanzi.Character, error)
}

// Engine is the query engine.
type Engine struct {
	store        Store
	index        *decomp.Index
	logger       *zap.Logger
	pick         store.Picker
	defaultLimit int
	maxLimit     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPicker sets the random source used by Random. It must be safe for
// concurrent use if the engine is shared.
func WithPicker(p store.Picker) Option {
	return func(e *Engine) { e.pick = p }
}

// WithSearchLimits sets the limit used when a search asks for none, and
// the most a search may return.
func WithSearchLimits(def, max int) Option {
	return func(e *Engine) {
		e.defaultLimit = def
		e.maxLimit = max
	}
}

// New creates an engine over s.
func New(s Store, opts ...Option) *Engine {
	e := &Engine{
		store:        s,
		index:        decomp.NewIndex(s),
		logger:       zap.NewNop(),
		defaultLimit: 20,
		maxLimit:     50,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// fail logs store failures; caller errors are returned quietly.
func (e *Engine) fail(op string, err error, fields ...zap.Field) error {
	if errors.Is(err, hanzi.ErrStoreUnavailable) {
		e.logger.Warn("store failure", append(fields, zap.String("op", op), zap.Error(err))...)
	} else {
		e.logger.Debug("query rejected", append(fields, zap.String("op", op), zap.Error(err))...)
	}
	return err
}

// Lookup resolves key as a codepoint when it has the U+ form and as a
// grapheme otherwise.
func (e *Engine) Lookup(ctx context.Context, key string) (hanzi.Character, error) {
	if hanzi.IsCodepoint(key) {
		return e.LookupCodepoint(ctx, key)
	}
	return e.LookupGrapheme(ctx, key)
}

// LookupGrapheme returns the record for a single character.
func (e *Engine) LookupGrapheme(ctx context.Context, g string) (hanzi.Character, error) {
	c, err := e.store.GetByGrapheme(ctx, g)
	if err != nil {
		return hanzi.Character{}, e.fail("lookup", err, zap.String("grapheme", g))
	}
	e.logger.Debug("lookup", zap.String("grapheme", g), zap.String("codepoint", c.Codepoint))
	return c, nil
}

// LookupCodepoint returns the record for a U+XXXX codepoint.
func (e *Engine) LookupCodepoint(ctx context.Context, cp string) (hanzi.Character, error) {
	c, err := e.store.GetByCodepoint(ctx, cp)
	if err != nil {
		return hanzi.Character{}, e.fail("lookup", err, zap.String("codepoint", cp))
	}
	e.logger.Debug("lookup", zap.String("codepoint", c.Codepoint))
	return c, nil
}

// Random returns a character drawn uniformly from the core ideograph range.
func (e *Engine) Random(ctx context.Context) (hanzi.Character, error) {
	return e.RandomIn(ctx, hanzi.Range{})
}

// RandomIn returns a character drawn uniformly from r.
func (e *Engine) RandomIn(ctx context.Context, r hanzi.Range) (hanzi.Character, error) {
	c, err := e.store.SampleRandom(ctx, e.pick, r)
	if err != nil {
		return hanzi.Character{}, e.fail("random", err)
	}
	return c, nil
}

// Grow finds characters composed from character under relation, with
// character in the role slot, and previews what fills targetRole. Results
// are ordered by frequency and capped at hanzi.GrowLimit. For symmetric
// relations character may sit in either slot.
func (e *Engine) Grow(ctx context.Context, character, role, targetRole, relation string) ([]hanzi.Growth, error) {
	if err := hanzi.ValidateGrapheme(character); err != nil {
		return nil, e.fail("grow", err)
	}
	r, err := hanzi.ParseRole(role)
	if err != nil {
		return nil, e.fail("grow", err)
	}
	target, err := hanzi.ParseRole(targetRole)
	if err != nil {
		return nil, e.fail("grow", err)
	}
	rel, err := hanzi.ParseRelation(relation)
	if err != nil {
		return nil, e.fail("grow", err)
	}
	return e.grow(ctx, character, r, target, rel)
}

// GrowDirection runs the growth query bound to an availability direction.
func (e *Engine) GrowDirection(ctx context.Context, character, direction string) ([]hanzi.Growth, error) {
	d, ok := hanzi.LookupDirection(direction)
	if !ok {
		return nil, e.fail("grow", errInvalidDirection(direction))
	}
	if err := hanzi.ValidateGrapheme(character); err != nil {
		return nil, e.fail("grow", err)
	}
	return e.grow(ctx, character, d.Role, d.Target, d.Relation)
}

func errInvalidDirection(id string) error {
	return fmt.Errorf("%w: direction %q", hanzi.ErrInvalidArgument, id)
}

func (e *Engine) grow(ctx context.Context, character string, role, target hanzi.Role, rel hanzi.Relation) ([]hanzi.Growth, error) {
	out, err := e.index.Compositions(ctx, character, role, target, rel, hanzi.GrowLimit)
	if err != nil {
		return nil, e.fail("grow", err, zap.String("character", character), zap.String("relation", rel.Name))
	}
	e.logger.Debug("grow",
		zap.String("character", character),
		zap.String("role", string(role)),
		zap.String("target", string(target)),
		zap.String("relation", rel.Name),
		zap.Int("results", len(out)),
	)
	return out, nil
}

// Availability reports, for each of the six growth directions, whether
// growing character that way yields anything. Each direction is a
// single-row existence check; the checks run concurrently.
func (e *Engine) Availability(ctx context.Context, character string) (map[string]bool, error) {
	if err := hanzi.ValidateGrapheme(character); err != nil {
		return nil, e.fail("availability", err)
	}

	found := make([]bool, len(hanzi.Directions))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range hanzi.Directions {
		g.Go(func() error {
			ok, err := e.index.HasComposition(gctx, character, d.Role, d.Target, d.Relation)
			if err != nil {
				return err
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, e.fail("availability", err, zap.String("character", character))
	}

	out := make(map[string]bool, len(found))
	for i, d := range hanzi.Directions {
		out[d.ID] = found[i]
	}
	return out, nil
}

// Search returns characters whose grapheme, pronunciation or meaning
// contains query. Latin text matches regardless of case and tone marks.
// limit <= 0 selects the default; larger limits are clamped.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]hanzi.Character, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []hanzi.Character{}, nil
	}
	if limit <= 0 {
		limit = e.defaultLimit
	}
	if limit > e.maxLimit {
		limit = e.maxLimit
	}

	out, err := e.store.Search(ctx, query, limit)
	if err != nil {
		return nil, e.fail("search", err, zap.String("query", query))
	}
	e.logger.Debug("search", zap.String("query", query), zap.Int("limit", limit), zap.Int("results", len(out)))
	if out == nil {
		out = []hanzi.Character{}
	}
	return out, nil
}

// TopStarts lists the characters flagged as good entry points, most
// frequent first.
func (e *Engine) TopStarts(ctx context.Context) ([]hanzi.Character, error) {
	out, err := e.store.GoodStarts(ctx)
	if err != nil {
		return nil, e.fail("top starts", err)
	}
	if out == nil {
		out = []hanzi.Character{}
	}
	return out, nil
}

// Constituents returns the decomposition of a single character.
func (e *Engine) Constituents(ctx context.Context, character string) (decomp.Constituents, error) {
	c, err := e.index.ConstituentsOf(ctx, character)
	if err != nil {
		return decomp.Constituents{}, e.fail("constituents", err, zap.String("character", character))
	}
	return c, nil
}
