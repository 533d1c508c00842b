package validation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes raw input for storage and comparison: trims
// surrounding whitespace, composes to NFC so precomposed and decomposed
// diacritic sequences compare equal, then lowercases. Diacritics are kept
// (ā, č, é stay as-is). Idempotent; empty input yields empty output.
//
// Every dictionary lookup, duplicate check and rule match keys on this form.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = norm.NFC.String(s)
	return strings.ToLower(s)
}
