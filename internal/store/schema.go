package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/pinyin"
)

// SchemaVersion is bumped whenever the characters table changes shape.
const SchemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS corpus_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS characters (
	codepoint            TEXT PRIMARY KEY,
	cp_value             INTEGER NOT NULL,
	grapheme             TEXT NOT NULL,
	radical              TEXT NOT NULL DEFAULT '',
	stroke_count         INTEGER NOT NULL DEFAULT 0,
	pronunciation        TEXT NOT NULL DEFAULT '',
	meaning              TEXT NOT NULL DEFAULT '',
	search_pronunciation TEXT NOT NULL DEFAULT '',
	search_meaning       TEXT NOT NULL DEFAULT '',
	search_marked        TEXT NOT NULL DEFAULT '',
	frequency            REAL NOT NULL DEFAULT 0,
	good_start           INTEGER NOT NULL DEFAULT 0,
	structure            TEXT NOT NULL,
	component1           TEXT,
	component2           TEXT,
	leaf_components      TEXT
);

CREATE INDEX IF NOT EXISTS idx_characters_grapheme ON characters(grapheme);
CREATE INDEX IF NOT EXISTS idx_characters_cp_value ON characters(cp_value);
CREATE INDEX IF NOT EXISTS idx_characters_component1 ON characters(component1, structure);
CREATE INDEX IF NOT EXISTS idx_characters_component2 ON characters(component2, structure);
`

// Build creates a new corpus database at path and loads chars into it in a
// single transaction. It refuses to touch an existing file. The database is
// written to a temporary file in the same directory and only appears at
// path once complete, so a failed build leaves nothing behind. This is the
// import path only; Open never writes.
func Build(ctx context.Context, path string, chars []hanzi.Character) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("database already exists: %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)
	defer os.Remove(tmpPath + "-journal")

	if err := load(ctx, tmpPath, chars); err != nil {
		return err
	}
	// Link fails if path appeared meanwhile, where Rename would replace it.
	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("database already exists: %s", path)
		}
		return fmt.Errorf("publishing database: %w", err)
	}
	return nil
}

// load writes the schema and chars into the database file at path.
func load(ctx context.Context, path string, chars []hanzi.Character) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO characters (
		codepoint, cp_value, grapheme, radical, stroke_count, pronunciation, meaning,
		search_pronunciation, search_meaning, search_marked, frequency, good_start,
		structure, component1, component2, leaf_components
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range chars {
		c := &chars[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		cp, _ := hanzi.ParseCodepoint(c.Codepoint)
		leaves, err := encodeLeaves(c.LeafComponents)
		if err != nil {
			return fmt.Errorf("record %s: %w", c.Codepoint, err)
		}
		_, err = stmt.ExecContext(ctx,
			hanzi.FormatCodepoint(cp), int64(cp), c.Grapheme, c.Radical, c.StrokeCount,
			c.Pronunciation, c.Meaning, pronunciationKey(c.Pronunciation), hanzi.FoldKey(c.Meaning),
			markedKey(c.Pronunciation, c.Meaning), c.Frequency, c.GoodStart, string(c.Structure),
			nullable(c.Component1), nullable(c.Component2), leaves,
		)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", c.Codepoint, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO corpus_meta (key, value) VALUES ('schema_version', ?)`,
		strconv.Itoa(SchemaVersion),
	); err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// pronunciationKey indexes both the toneless and the tone-number spelling,
// so "mu" and "mu4" each find "mù".
func pronunciationKey(p string) string {
	if p == "" {
		return ""
	}
	return hanzi.FoldKey(p) + " | " + hanzi.FoldKey(pinyin.Numbered(p))
}

// markedKey keeps tone marks so that a marked query matches only the
// syllables carrying that mark.
func markedKey(pronunciation, meaning string) string {
	return hanzi.MarkedKey(pronunciation) + " | " + hanzi.MarkedKey(meaning)
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func encodeLeaves(leaves []string) (interface{}, error) {
	if len(leaves) == 0 {
		return nil, nil
	}
	for _, l := range leaves {
		if !utf8.ValidString(l) || l == "" {
			return nil, fmt.Errorf("%w: leaf component %q", hanzi.ErrInvalidArgument, l)
		}
	}
	data, err := json.Marshal(leaves)
	if err != nil {
		return nil, fmt.Errorf("encoding leaf components: %w", err)
	}
	return string(data), nil
}
