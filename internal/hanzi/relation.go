package hanzi

import (
	"fmt"
	"strings"
)

// Role names one of the two component slots of a record.
type Role string

const (
	RoleComponent1 Role = "component1"
	RoleComponent2 Role = "component2"
)

// ParseRole accepts "component1" or "component2".
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleComponent1, RoleComponent2:
		return r, nil
	}
	return "", fmt.Errorf("%w: role %q", ErrInvalidArgument, s)
}

// Column is the store column holding this slot.
func (r Role) Column() string {
	return string(r)
}

// Other returns the opposite slot.
func (r Role) Other() Role {
	if r == RoleComponent1 {
		return RoleComponent2
	}
	return RoleComponent1
}

// StructureMatch selects stored structures either by exact tag or by family,
// where any tag containing Value matches.
type StructureMatch struct {
	Value  string
	Family bool
}

// Matches reports whether s is selected.
func (m StructureMatch) Matches(s Structure) bool {
	if m.Family {
		return strings.Contains(string(s), m.Value)
	}
	return string(s) == m.Value
}

// Relation is a spatial relation a growth query traverses. Symmetric
// relations ignore slot order: a component matches in either slot and the
// filler is the slot it does not occupy.
type Relation struct {
	Name      string
	Match     StructureMatch
	Symmetric bool
}

var (
	RelationLeftRight = Relation{Name: "left-right", Match: StructureMatch{Value: string(StructureLeftRight)}}
	RelationTopBottom = Relation{Name: "top-bottom", Match: StructureMatch{Value: string(StructureTopBottom)}}
	RelationSurround  = Relation{Name: "surround", Match: StructureMatch{Value: "surround", Family: true}}
	RelationOverlay   = Relation{Name: "overlay", Match: StructureMatch{Value: string(StructureOverlaid)}, Symmetric: true}
)

var relations = map[string]Relation{
	RelationLeftRight.Name: RelationLeftRight,
	RelationTopBottom.Name: RelationTopBottom,
	RelationSurround.Name:  RelationSurround,
	RelationOverlay.Name:   RelationOverlay,
}

// ParseRelation accepts left-right, top-bottom, surround or overlay.
func ParseRelation(s string) (Relation, error) {
	if r, ok := relations[strings.TrimSpace(s)]; ok {
		return r, nil
	}
	return Relation{}, fmt.Errorf("%w: relation %q", ErrInvalidArgument, s)
}

// RelationNames lists the accepted relation names in a fixed order.
func RelationNames() []string {
	return []string{
		RelationLeftRight.Name,
		RelationTopBottom.Name,
		RelationSurround.Name,
		RelationOverlay.Name,
	}
}

// Direction binds an availability id to the growth query it gates.
type Direction struct {
	ID       string
	Role     Role
	Target   Role
	Relation Relation
}

// Directions are the six growth directions offered for a character, in
// display order.
var Directions = []Direction{
	{ID: "grow-right", Role: RoleComponent1, Target: RoleComponent2, Relation: RelationLeftRight},
	{ID: "grow-left", Role: RoleComponent2, Target: RoleComponent1, Relation: RelationLeftRight},
	{ID: "grow-above", Role: RoleComponent2, Target: RoleComponent1, Relation: RelationTopBottom},
	{ID: "grow-below", Role: RoleComponent1, Target: RoleComponent2, Relation: RelationTopBottom},
	{ID: "grow-surround", Role: RoleComponent1, Target: RoleComponent2, Relation: RelationSurround},
	{ID: "grow-overlay", Role: RoleComponent1, Target: RoleComponent2, Relation: RelationOverlay},
}

// LookupDirection finds a direction by id.
func LookupDirection(id string) (Direction, bool) {
	for _, d := range Directions {
		if d.ID == id {
			return d, true
		}
	}
	return Direction{}, false
}
