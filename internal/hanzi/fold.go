package hanzi

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldKey reduces latin text to a search key: case folded with tone marks
// and other diacritics removed, so "Mù" and "mu" share a key. Han text is
// unaffected.
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(cases.Fold().String(out))
}

// MarkedKey case folds s but keeps its diacritics, decomposed so that
// "lü" is found inside "lǜ" while "mù" is not found inside "mǔ".
func MarkedKey(s string) string {
	return norm.NFD.String(strings.TrimSpace(cases.Fold().String(s)))
}

// HasMarks reports whether s carries tone marks or other diacritics.
func HasMarks(s string) bool {
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			return true
		}
	}
	return false
}
