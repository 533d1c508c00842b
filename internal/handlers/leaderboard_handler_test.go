package handlers

import "testing"

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{
			name:     "missing defaults to 100",
			raw:      "",
			expected: 100,
		},
		{
			name:     "valid value",
			raw:      "10",
			expected: 10,
		},
		{
			name:     "non-numeric falls back to 100",
			raw:      "abc",
			expected: 100,
		},
		{
			name:     "zero clamps to 1",
			raw:      "0",
			expected: 1,
		},
		{
			name:     "negative clamps to 1",
			raw:      "-5",
			expected: 1,
		},
		{
			name:     "above cap clamps to 100",
			raw:      "500",
			expected: 100,
		},
		{
			name:     "exactly 100",
			raw:      "100",
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLimit(tt.raw); got != tt.expected {
				t.Errorf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.expected)
			}
		})
	}
}
