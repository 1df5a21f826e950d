package corpus

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/f3rmion/hanzitree/internal/hanzi"
	"github.com/f3rmion/hanzitree/internal/pinyin"
	"github.com/f3rmion/hanzitree/internal/store"
)

// Importer converts corpus files and writes them to a new database.
type Importer struct {
	logger *zap.Logger
	pinyin *pinyin.Parser
}

// NewImporter creates an importer. A nil logger discards output.
func NewImporter(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{logger: logger, pinyin: pinyin.NewParser()}
}

// Stats summarises an import.
type Stats struct {
	Imported  int `json:"imported"`
	Skipped   int `json:"skipped"`
	Malformed int `json:"malformed"`
}

// Convert normalises entries. Entries that cannot be converted, and repeats
// of a codepoint already seen, are skipped with a warning.
func (im *Importer) Convert(entries []Entry) ([]hanzi.Character, int) {
	out := make([]hanzi.Character, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	skipped := 0
	for i := range entries {
		c, err := entries[i].Character(im.pinyin)
		if err != nil {
			im.logger.Warn("skipping corpus entry",
				zap.Int("index", i),
				zap.String("character", entries[i].Character),
				zap.Error(err),
			)
			skipped++
			continue
		}
		if seen[c.Codepoint] {
			im.logger.Warn("skipping duplicate codepoint", zap.String("codepoint", c.Codepoint))
			skipped++
			continue
		}
		seen[c.Codepoint] = true
		out = append(out, c)
	}
	return out, skipped
}

// Import reads every file in srcs and builds a fresh database at dst.
func (im *Importer) Import(ctx context.Context, dst string, srcs ...string) (Stats, error) {
	var (
		stats   Stats
		entries []Entry
	)
	for _, src := range srcs {
		got, malformed, err := LoadFile(src)
		if err != nil {
			return Stats{}, err
		}
		if malformed > 0 {
			im.logger.Warn("skipped malformed lines", zap.String("file", src), zap.Int("lines", malformed))
		}
		im.logger.Debug("loaded corpus file", zap.String("file", src), zap.Int("entries", len(got)))
		stats.Malformed += malformed
		entries = append(entries, got...)
	}

	chars, skipped := im.Convert(entries)
	stats.Skipped = skipped
	if len(chars) == 0 {
		return stats, fmt.Errorf("%w: nothing to import", hanzi.ErrEmptyCorpus)
	}

	if err := store.Build(ctx, dst, chars); err != nil {
		return stats, err
	}
	stats.Imported = len(chars)
	im.logger.Info("corpus imported",
		zap.String("database", dst),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped),
		zap.Int("malformed", stats.Malformed),
	)
	return stats, nil
}
