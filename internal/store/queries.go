package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/f3rmion/hanzitree/internal/hanzi"
)

// GetByGrapheme returns the single record whose grapheme is g. A grapheme
// shared by several records fails with ErrAmbiguous.
func (s *Store) GetByGrapheme(ctx context.Context, g string) (hanzi.Character, error) {
	if err := hanzi.ValidateGrapheme(g); err != nil {
		return hanzi.Character{}, err
	}

	chars, err := s.queryCharacters(ctx, "lookup by grapheme",
		`SELECT `+characterColumns+` FROM characters WHERE grapheme = ? ORDER BY cp_value LIMIT 2`, g)
	if err != nil {
		return hanzi.Character{}, err
	}
	switch len(chars) {
	case 0:
		return hanzi.Character{}, fmt.Errorf("%w: character %s", hanzi.ErrNotFound, g)
	case 1:
		return chars[0], nil
	default:
		return hanzi.Character{}, fmt.Errorf("%w: %s is stored as %s and %s",
			hanzi.ErrAmbiguous, g, chars[0].Codepoint, chars[1].Codepoint)
	}
}

// GetByCodepoint returns the record identified by a U+XXXX codepoint.
func (s *Store) GetByCodepoint(ctx context.Context, cp string) (hanzi.Character, error) {
	norm, err := hanzi.NormalizeCodepoint(cp)
	if err != nil {
		return hanzi.Character{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE codepoint = ?`, norm)
	c, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hanzi.Character{}, fmt.Errorf("%w: codepoint %s", hanzi.ErrNotFound, norm)
	}
	if err != nil {
		return hanzi.Character{}, unavailable("lookup by codepoint", err)
	}
	return c, nil
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// SampleRandom draws one record uniformly from those whose codepoint lies in
// r, or in the core ideograph range when r is zero. A nil pick uses the
// global source, which is safe for concurrent use.
func (s *Store) SampleRandom(ctx context.Context, pick Picker, r hanzi.Range) (hanzi.Character, error) {
	if pick == nil {
		pick = globalPicker{}
	}
	r = r.OrCore()
	if r.Lo > r.Hi {
		return hanzi.Character{}, fmt.Errorf("%w: range %s..%s",
			hanzi.ErrInvalidArgument, hanzi.FormatCodepoint(r.Lo), hanzi.FormatCodepoint(r.Hi))
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM characters WHERE cp_value BETWEEN ? AND ?`, r.Lo, r.Hi,
	).Scan(&n)
	if err != nil {
		return hanzi.Character{}, unavailable("counting sample range", err)
	}
	if n == 0 {
		return hanzi.Character{}, fmt.Errorf("%w: no characters in %s..%s",
			hanzi.ErrEmptyCorpus, hanzi.FormatCodepoint(r.Lo), hanzi.FormatCodepoint(r.Hi))
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters
		WHERE cp_value BETWEEN ? AND ?
		ORDER BY cp_value, codepoint
		LIMIT 1 OFFSET ?`, r.Lo, r.Hi, pick.IntN(n))
	c, err := scanCharacter(row)
	if err != nil {
		return hanzi.Character{}, unavailable("sampling character", err)
	}
	return c, nil
}

// Scan returns every record for which pred returns true, in codepoint order.
func (s *Store) Scan(ctx context.Context, pred func(hanzi.Character) bool) ([]hanzi.Character, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY cp_value, codepoint`)
	if err != nil {
		return nil, unavailable("scanning characters", err)
	}
	defer rows.Close()

	var out []hanzi.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, unavailable("scanning characters", err)
		}
		if pred == nil || pred(c) {
			out = append(out, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("scanning characters", err)
	}
	return out, nil
}

// Search returns up to limit records whose grapheme, pronunciation or
// meaning contains query, ignoring case. A query without tone marks also
// matches marked text ("mu" finds "mù") and tone numbers ("mu4"); a marked
// query matches only text carrying the same marks.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]hanzi.Character, error) {
	raw := "%" + escapeLike(query) + "%"
	if hanzi.HasMarks(query) {
		marked := "%" + escapeLike(hanzi.MarkedKey(query)) + "%"
		return s.queryCharacters(ctx, "searching characters",
			`SELECT `+characterColumns+` FROM characters
			WHERE grapheme LIKE ? ESCAPE '\'
				OR search_marked LIKE ? ESCAPE '\'
			ORDER BY frequency DESC, cp_value
			LIMIT ?`, raw, marked, limit)
	}

	folded := "%" + escapeLike(hanzi.FoldKey(query)) + "%"
	return s.queryCharacters(ctx, "searching characters",
		`SELECT `+characterColumns+` FROM characters
		WHERE grapheme LIKE ? ESCAPE '\'
			OR search_pronunciation LIKE ? ESCAPE '\'
			OR search_meaning LIKE ? ESCAPE '\'
		ORDER BY frequency DESC, cp_value
		LIMIT ?`, raw, folded, folded, limit)
}

// GoodStarts returns every record flagged as a good starting point, most
// frequent first.
func (s *Store) GoodStarts(ctx context.Context) ([]hanzi.Character, error) {
	return s.queryCharacters(ctx, "listing top starts",
		`SELECT `+characterColumns+` FROM characters
		WHERE good_start = 1
		ORDER BY frequency DESC, cp_value`)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
