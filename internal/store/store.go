// Package store is the read-only Character Store backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	_ "modernc.org/sqlite"
)

// Store reads character records from a corpus database. It is safe for
// concurrent use and never writes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the corpus at path read-only and checks that it is reachable
// and carries the expected schema version.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=query_only(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", hanzi.ErrStoreUnavailable, path, err)
	}

	s := &Store{db: db, path: path}
	if err := s.check(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) check(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}

	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM corpus_meta WHERE key = 'schema_version'`,
	).Scan(&version)
	if err != nil {
		return unavailable("reading schema version", err)
	}
	if v, _ := strconv.Atoi(version); v != SchemaVersion {
		return fmt.Errorf("%w: schema version %s, want %d", hanzi.ErrStoreUnavailable, version, SchemaVersion)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of records in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters`).Scan(&n); err != nil {
		return 0, unavailable("counting characters", err)
	}
	return n, nil
}

// unavailable wraps a driver error so callers can match ErrStoreUnavailable.
// Context cancellation is passed through unchanged.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", hanzi.ErrStoreUnavailable, op, err)
}

const characterColumns = `codepoint, grapheme, radical, stroke_count, pronunciation, meaning,
	frequency, good_start, structure, component1, component2, leaf_components`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (hanzi.Character, error) {
	var c hanzi.Character
	var structure string
	var comp1, comp2, leaves sql.NullString
	err := row.Scan(
		&c.Codepoint, &c.Grapheme, &c.Radical, &c.StrokeCount, &c.Pronunciation, &c.Meaning,
		&c.Frequency, &c.GoodStart, &structure, &comp1, &comp2, &leaves,
	)
	if err != nil {
		return hanzi.Character{}, err
	}
	c.Structure = hanzi.Structure(structure)
	if comp1.Valid {
		c.Component1 = comp1.String
	}
	if comp2.Valid {
		c.Component2 = comp2.String
	}
	if leaves.Valid && leaves.String != "" {
		if err := json.Unmarshal([]byte(leaves.String), &c.LeafComponents); err != nil {
			return hanzi.Character{}, fmt.Errorf("decoding leaf components of %s: %w", c.Codepoint, err)
		}
	}
	return c, nil
}

func (s *Store) queryCharacters(ctx context.Context, op, query string, args ...interface{}) ([]hanzi.Character, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	var out []hanzi.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return out, nil
}
