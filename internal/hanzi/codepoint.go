package hanzi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Range is an inclusive span of codepoints.
type Range struct {
	Lo, Hi rune
}

// CoreRange is the CJK Unified Ideographs block.
var CoreRange = Range{Lo: 0x4E00, Hi: 0x9FFF}

// IsZero reports whether r is the zero value.
func (r Range) IsZero() bool {
	return r.Lo == 0 && r.Hi == 0
}

// OrCore returns r, or CoreRange when r is zero.
func (r Range) OrCore() Range {
	if r.IsZero() {
		return CoreRange
	}
	return r
}

// ParseCodepoint parses a U+XXXX token (4 to 6 hex digits) into a rune.
func ParseCodepoint(s string) (rune, error) {
	if len(s) < 6 || len(s) > 8 || !strings.HasPrefix(strings.ToUpper(s[:2]), "U+") {
		return 0, fmt.Errorf("%w: codepoint %q", ErrInvalidArgument, s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, fmt.Errorf("%w: codepoint %q", ErrInvalidArgument, s)
	}
	return rune(v), nil
}

// FormatCodepoint renders r as U+XXXX.
func FormatCodepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// NormalizeCodepoint validates s and returns its canonical upper-case form.
// Surrounding whitespace makes the token malformed.
func NormalizeCodepoint(s string) (string, error) {
	r, err := ParseCodepoint(s)
	if err != nil {
		return "", err
	}
	return FormatCodepoint(r), nil
}

// IsCodepoint reports whether s looks like a U+ token rather than a grapheme.
func IsCodepoint(s string) bool {
	return len(s) > 2 && strings.EqualFold(s[:2], "U+")
}

// ValidateGrapheme checks that s is exactly one user-perceived character.
func ValidateGrapheme(s string) error {
	if s == "" || !utf8.ValidString(s) || uniseg.GraphemeClusterCount(s) != 1 {
		return fmt.Errorf("%w: %q is not a single character", ErrInvalidArgument, s)
	}
	return nil
}

// CodepointOf returns the U+XXXX form of the first rune of a grapheme.
func CodepointOf(grapheme string) (string, error) {
	if err := ValidateGrapheme(grapheme); err != nil {
		return "", err
	}
	r, _ := utf8.DecodeRuneInString(grapheme)
	return FormatCodepoint(r), nil
}
