package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// EdgeQuery selects composition edges: records whose structure matches and
// that hold Component in Slot (or in either slot when EitherSlot is set).
// The filler is the Filler slot, or the slot Component does not occupy when
// EitherSlot is set.
type EdgeQuery struct {
	Match      hanzi.StructureMatch
	Component  string
	Slot       hanzi.Role
	Filler     hanzi.Role
	EitherSlot bool
	Limit      int
}

// Edge is one composed record found by an EdgeQuery.
type Edge struct {
	Composed  string
	Codepoint string
	Filler    string
}

func slotColumn(r hanzi.Role) (string, error) {
	switch r {
	case hanzi.RoleComponent1, hanzi.RoleComponent2:
		return r.Column(), nil
	}
	return "", fmt.Errorf("%w: role %q", hanzi.ErrInvalidArgument, r)
}

// clause is a SQL fragment with its positional arguments.
type clause struct {
	sql  string
	args []interface{}
}

// build renders the filler expression and the WHERE clause.
func (q EdgeQuery) build() (filler, where clause, err error) {
	var b strings.Builder
	if q.Match.Family {
		b.WriteString(`structure LIKE ? ESCAPE '\'`)
		where.args = append(where.args, "%"+escapeLike(q.Match.Value)+"%")
	} else {
		b.WriteString(`structure = ?`)
		where.args = append(where.args, q.Match.Value)
	}

	if q.EitherSlot {
		filler = clause{
			sql:  `CASE WHEN component1 = ? THEN component2 ELSE component1 END`,
			args: []interface{}{q.Component},
		}
		b.WriteString(` AND (component1 = ? OR component2 = ?)`)
		where.args = append(where.args, q.Component, q.Component)
		where.sql = b.String()
		return filler, where, nil
	}

	slot, err := slotColumn(q.Slot)
	if err != nil {
		return clause{}, clause{}, err
	}
	fillerCol, err := slotColumn(q.Filler)
	if err != nil {
		return clause{}, clause{}, err
	}
	b.WriteString(` AND ` + slot + ` = ?`)
	where.args = append(where.args, q.Component)
	where.sql = b.String()
	return clause{sql: fillerCol}, where, nil
}

// Edges returns matching edges, most frequent composed character first,
// ties broken by codepoint.
func (s *Store) Edges(ctx context.Context, q EdgeQuery) ([]Edge, error) {
	filler, where, err := q.build()
	if err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("%w: edge limit %d", hanzi.ErrInvalidArgument, q.Limit)
	}

	args := append(append([]interface{}{}, filler.args...), where.args...)
	rows, err := s.db.QueryContext(ctx,
		`SELECT grapheme, codepoint, COALESCE(`+filler.sql+`, '')
		FROM characters
		WHERE `+where.sql+`
		ORDER BY frequency DESC, cp_value
		LIMIT ?`, append(args, q.Limit)...)
	if err != nil {
		return nil, unavailable("querying edges", err)
	}
	defer rows.Close()

	out := make([]Edge, 0, q.Limit)
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Composed, &e.Codepoint, &e.Filler); err != nil {
			return nil, unavailable("querying edges", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("querying edges", err)
	}
	return out, nil
}

// HasEdge reports whether at least one edge matches, reading at most one row.
func (s *Store) HasEdge(ctx context.Context, q EdgeQuery) (bool, error) {
	_, where, err := q.build()
	if err != nil {
		return false, err
	}

	var one int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM characters WHERE `+where.sql+` LIMIT 1`, where.args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("checking edge", err)
	}
	return true, nil
}
