package validation

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "trims and lowercases",
			raw:      "  Ābols ",
			expected: "ābols",
		},
		{
			name:     "composes decomposed diacritics to NFC",
			raw:      "ābols", // "a" + combining macron
			expected: "ābols",  // precomposed ā
		},
		{
			name:     "decomposed uppercase",
			raw:      "Ābols",
			expected: "ābols",
		},
		{
			name:     "plain ascii unchanged",
			raw:      "skola",
			expected: "skola",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "whitespace only",
			raw:      "   ",
			expected: "",
		},
		{
			name:     "diacritics preserved",
			raw:      "šokolāde",
			expected: "šokolāde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.raw)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  Ābols ", "ābols", "SKOLA", "šķūnis", ""}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}
