package decomp

import (
	"context"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/store"
)

// Reader is the part of the character store the index reads from.
type Reader interface {
	GetByGrapheme(ctx context.Context, g string) (hanzi.Character, error)
	Edges(ctx context.Context, q store.EdgeQuery) ([]store.Edge, error)
	HasEdge(ctx context.Context, q store.EdgeQuery) (bool, error)
}

// Constituents is the decomposition part of a record.
type Constituents struct {
	Structure      hanzi.Structure `json:"structure"`
	Component1     string          `json:"component1,omitempty"`
	Component2     string          `json:"component2,omitempty"`
	LeafComponents []string        `json:"leaf_components,omitempty"`
}

// Index reads a store's records as composition edges.
type Index struct {
	r Reader
}

// NewIndex creates an index over r.
func NewIndex(r Reader) *Index {
	return &Index{r: r}
}

// Project returns the decomposition fields of c.
func Project(c hanzi.Character) Constituents {
	return Constituents{
		Structure:      c.Structure,
		Component1:     c.Component1,
		Component2:     c.Component2,
		LeafComponents: c.LeafComponents,
	}
}

// ConstituentsOf looks up grapheme and projects its decomposition.
func (ix *Index) ConstituentsOf(ctx context.Context, grapheme string) (Constituents, error) {
	c, err := ix.r.GetByGrapheme(ctx, grapheme)
	if err != nil {
		return Constituents{}, err
	}
	return Project(c), nil
}

// EdgeQuery translates a growth request into a store query. Symmetric
// relations match the component in either slot; role and target only
// matter for ordered relations.
func EdgeQuery(component string, role, target hanzi.Role, rel hanzi.Relation, limit int) store.EdgeQuery {
	q := store.EdgeQuery{
		Match:     rel.Match,
		Component: component,
		Limit:     limit,
	}
	if rel.Symmetric {
		q.EitherSlot = true
		return q
	}
	q.Slot = role
	q.Filler = target
	return q
}

// Compositions returns up to limit composed characters holding component
// under rel, most frequent first.
func (ix *Index) Compositions(ctx context.Context, component string, role, target hanzi.Role, rel hanzi.Relation, limit int) ([]hanzi.Growth, error) {
	edges, err := ix.r.Edges(ctx, EdgeQuery(component, role, target, rel, limit))
	if err != nil {
		return nil, err
	}
	out := make([]hanzi.Growth, len(edges))
	for i, e := range edges {
		out[i] = hanzi.Growth{Composed: e.Composed, Codepoint: e.Codepoint, Filler: e.Filler}
	}
	return out, nil
}

// HasComposition reports whether Compositions would return anything.
func (ix *Index) HasComposition(ctx context.Context, component string, role, target hanzi.Role, rel hanzi.Relation) (bool, error) {
	return ix.r.HasEdge(ctx, EdgeQuery(component, role, target, rel, 1))
}
