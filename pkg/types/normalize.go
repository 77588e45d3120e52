package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes characters and removes combining marks, so that
// "Numéro d'identification" and "Numero didentification" normalize alike.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName derives the stable key form of a display name: accents are
// stripped and every character outside [A-Za-z0-9_] is dropped. The result is
// the SpecialName of a property definition; registry lookups additionally
// lower-case it.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(accentStripper, name)
	if err != nil {
		stripped = name
	}
	var b strings.Builder
	for _, r := range stripped {
		if r == '_' || (r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeKey is the case-insensitive registry key for a name.
func normalizeKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}
