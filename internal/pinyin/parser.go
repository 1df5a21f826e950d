// Package pinyin looks up readings for characters and rewrites tone-marked
// pinyin into its tone-number form.
package pinyin

import (
	"strconv"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Tone is a Mandarin tone, 1 to 4 plus 5 for the neutral tone.
type Tone int

const (
	ToneUnknown Tone = 0
	Tone1       Tone = 1
	Tone2       Tone = 2
	Tone3       Tone = 3
	Tone4       Tone = 4
	Tone5       Tone = 5 // neutral
)

// Parser converts characters to pinyin.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a parser that returns every tone-marked reading.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	args.Heteronym = true
	return &Parser{args: args}
}

// Readings returns all pinyin readings for a single character, or nil when
// the dictionary has none.
func (p *Parser) Readings(char string) []string {
	result := gopinyin.Pinyin(char, p.args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Pronunciation joins the readings of char the way corpus records store
// them, or returns "" when none are known.
func (p *Parser) Pronunciation(char string) string {
	return strings.Join(p.Readings(char), ", ")
}

// Syllable is one pinyin syllable split into base and tone.
type Syllable struct {
	Full string // with tone mark, e.g. "hǎo"
	Base string // without, e.g. "hao"
	Tone Tone
}

// Numbered renders the syllable as base plus tone digit, e.g. "hao3".
func (s Syllable) Numbered() string {
	if s.Base == "" {
		return ""
	}
	return strings.ReplaceAll(s.Base, "ü", "v") + strconv.Itoa(int(s.Tone))
}

// Parse splits a tone-marked syllable.
func Parse(syllable string) Syllable {
	tone, base := extractTone(strings.ToLower(syllable))
	return Syllable{Full: syllable, Base: base, Tone: tone}
}

// Numbered rewrites every tone-marked syllable in text into tone-number
// form, keeping separators. "mù, lín" becomes "mu4, lin2".
func Numbered(text string) string {
	var b strings.Builder
	word := func(r rune) bool { return unicode.IsLetter(r) }
	start := -1
	for i, r := range text {
		switch {
		case word(r) && start < 0:
			start = i
		case !word(r) && start >= 0:
			b.WriteString(Parse(text[start:i]).Numbered())
			start = -1
			b.WriteRune(r)
		case !word(r):
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(Parse(text[start:]).Numbered())
	}
	return b.String()
}

type toneMark struct {
	base rune
	tone Tone
}

var toneMarks = map[rune]toneMark{
	'ā': {'a', Tone1}, 'á': {'a', Tone2}, 'ǎ': {'a', Tone3}, 'à': {'a', Tone4},
	'ē': {'e', Tone1}, 'é': {'e', Tone2}, 'ě': {'e', Tone3}, 'è': {'e', Tone4},
	'ī': {'i', Tone1}, 'í': {'i', Tone2}, 'ǐ': {'i', Tone3}, 'ì': {'i', Tone4},
	'ō': {'o', Tone1}, 'ó': {'o', Tone2}, 'ǒ': {'o', Tone3}, 'ò': {'o', Tone4},
	'ū': {'u', Tone1}, 'ú': {'u', Tone2}, 'ǔ': {'u', Tone3}, 'ù': {'u', Tone4},
	'ǖ': {'ü', Tone1}, 'ǘ': {'ü', Tone2}, 'ǚ': {'ü', Tone3}, 'ǜ': {'ü', Tone4},
	'ń': {'n', Tone2}, 'ň': {'n', Tone3}, 'ǹ': {'n', Tone4},
	'ḿ': {'m', Tone2},
}

// extractTone strips the tone mark. A syllable without one is neutral.
func extractTone(s string) (Tone, string) {
	tone := ToneUnknown
	var b strings.Builder
	for _, r := range s {
		if m, ok := toneMarks[r]; ok {
			b.WriteRune(m.base)
			tone = m.tone
			continue
		}
		b.WriteRune(r)
	}
	if tone == ToneUnknown {
		tone = Tone5
	}
	return tone, b.String()
}
