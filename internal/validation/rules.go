package validation

import (
	"strings"

	"wordrush/internal/models"
)

// DefaultDiacriticLetters covers the Latvian alphabet.
const DefaultDiacriticLetters = "āčēģīķļņšūž"

// Matcher evaluates prompt rules against normalized words. The diacritic
// letter set is configurable so the game is not tied to one alphabet.
type Matcher struct {
	diacritics map[rune]bool
}

// NewMatcher builds a Matcher recognizing the given diacritic letters. The
// letters run through Normalize first, so the set itself is case and
// composition insensitive.
func NewMatcher(diacriticLetters string) *Matcher {
	set := make(map[rune]bool)
	for _, r := range Normalize(diacriticLetters) {
		set[r] = true
	}
	return &Matcher{diacritics: set}
}

// Matches reports whether word satisfies rule. word must already be
// normalized; rule values are normalized here so rule authoring is case and
// composition insensitive too. Unknown or missing rule types match nothing.
func (m *Matcher) Matches(word string, rule models.Rule) bool {
	switch rule.Type {
	case models.RuleStartsWith:
		return strings.HasPrefix(word, Normalize(rule.Value))
	case models.RuleEndsWith:
		return strings.HasSuffix(word, Normalize(rule.Value))
	case models.RuleContains, models.RuleContainsDouble:
		// contains_double behaves exactly like contains; the doubled-letter
		// semantics never shipped.
		return strings.Contains(word, Normalize(rule.Value))
	case models.RuleContainsDiacritic:
		for _, r := range word {
			if m.diacritics[r] {
				return true
			}
		}
		return false
	default:
		return false
	}
}
