package validation

import (
	"testing"

	"wordrush/internal/models"
)

func TestMatcherMatches(t *testing.T) {
	m := NewMatcher(DefaultDiacriticLetters)

	tests := []struct {
		name     string
		word     string
		rule     models.Rule
		expected bool
	}{
		{
			name:     "starts_with hit",
			word:     "ābols",
			rule:     models.Rule{Type: models.RuleStartsWith, Value: "ā"},
			expected: true,
		},
		{
			name:     "starts_with miss",
			word:     "ābols",
			rule:     models.Rule{Type: models.RuleStartsWith, Value: "b"},
			expected: false,
		},
		{
			name:     "starts_with value normalized before comparison",
			word:     "ābols",
			rule:     models.Rule{Type: models.RuleStartsWith, Value: " Ā "},
			expected: true,
		},
		{
			name:     "ends_with hit",
			word:     "vārds",
			rule:     models.Rule{Type: models.RuleEndsWith, Value: "s"},
			expected: true,
		},
		{
			name:     "ends_with miss",
			word:     "skola",
			rule:     models.Rule{Type: models.RuleEndsWith, Value: "s"},
			expected: false,
		},
		{
			name:     "contains hit",
			word:     "diena",
			rule:     models.Rule{Type: models.RuleContains, Value: "ie"},
			expected: true,
		},
		{
			name:     "contains miss",
			word:     "skola",
			rule:     models.Rule{Type: models.RuleContains, Value: "ie"},
			expected: false,
		},
		{
			name:     "contains_double behaves like contains",
			word:     "šalle",
			rule:     models.Rule{Type: models.RuleContainsDouble, Value: "ll"},
			expected: true,
		},
		{
			name:     "contains_double miss",
			word:     "šale",
			rule:     models.Rule{Type: models.RuleContainsDouble, Value: "ll"},
			expected: false,
		},
		{
			name:     "contains_diacritic hit",
			word:     "šokolāde",
			rule:     models.Rule{Type: models.RuleContainsDiacritic},
			expected: true,
		},
		{
			name:     "contains_diacritic miss",
			word:     "skola",
			rule:     models.Rule{Type: models.RuleContainsDiacritic},
			expected: false,
		},
		{
			name:     "unknown rule type fails closed",
			word:     "skola",
			rule:     models.Rule{Type: "palindrome", Value: "x"},
			expected: false,
		},
		{
			name:     "missing rule type fails closed",
			word:     "skola",
			rule:     models.Rule{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Matches(tt.word, tt.rule)
			if result != tt.expected {
				t.Errorf("Matches(%q, %+v) = %v, want %v", tt.word, tt.rule, result, tt.expected)
			}
		})
	}
}

func TestMatcherConfigurableDiacritics(t *testing.T) {
	// A French-flavored set should not treat Latvian letters as diacritics
	m := NewMatcher("éèêàç")

	if m.Matches("ābols", models.Rule{Type: models.RuleContainsDiacritic}) {
		t.Error("ā should not count as a diacritic for a French letter set")
	}
	if !m.Matches("café", models.Rule{Type: models.RuleContainsDiacritic}) {
		t.Error("é should count as a diacritic for a French letter set")
	}
}
