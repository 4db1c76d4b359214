package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductName is the canonical product identity. Two products are the same
// entity iff their ProductName values are equal. Build one with
// NormalizeProductName; a raw conversion skips normalization.
type ProductName string

func (n ProductName) String() string { return string(n) }

// IsEmpty reports whether the name is blank.
func (n ProductName) IsEmpty() bool { return n == "" }

// NormalizeProductName prepares a product name for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to upper case
//   - collapses every run of internal whitespace (spaces, tabs, newlines) into one space
//
// Diacritics and punctuation are preserved. The function is idempotent.
func NormalizeProductName(s string) ProductName {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return ProductName(strings.ToUpper(strings.Join(fields, " ")))
}

// Slugify turns a display name into a stable lowercase identifier:
// accents removed, non-alphanumerics collapsed into single hyphens.
// "Produção Rodrigo" becomes "producao-rodrigo".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
