package models

import (
	"testing"
	"time"
)

func TestCurrentPrompt(t *testing.T) {
	prompts := []PromptSnapshot{
		{PromptID: 1, Description: "first"},
		{PromptID: 2, Description: "second"},
	}

	tests := []struct {
		name     string
		session  Session
		expected *int64 // expected PromptID, nil for no prompt
	}{
		{
			name:     "first prompt",
			session:  Session{Status: StatusActive, CurrentOrdinal: 1, Prompts: prompts},
			expected: ptrInt64(1),
		},
		{
			name:     "second prompt",
			session:  Session{Status: StatusActive, CurrentOrdinal: 2, Prompts: prompts},
			expected: ptrInt64(2),
		},
		{
			name:     "ordinal past the end",
			session:  Session{Status: StatusActive, CurrentOrdinal: 3, Prompts: prompts},
			expected: nil,
		},
		{
			name:     "submitted session",
			session:  Session{Status: StatusSubmitted, CurrentOrdinal: 1, Prompts: prompts},
			expected: nil,
		},
		{
			name:     "expired session",
			session:  Session{Status: StatusExpired, CurrentOrdinal: 1, Prompts: prompts},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.session.CurrentPrompt()
			if tt.expected == nil {
				if got != nil {
					t.Errorf("CurrentPrompt() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("CurrentPrompt() = nil, want prompt %d", *tt.expected)
			}
			if got.PromptID != *tt.expected {
				t.Errorf("CurrentPrompt().PromptID = %d, want %d", got.PromptID, *tt.expected)
			}
		})
	}
}

func TestHasAnswered(t *testing.T) {
	s := Session{Answers: []Answer{
		{NormalizedWord: "ābols"},
		{NormalizedWord: "skola"},
	}}

	if !s.HasAnswered("ābols") {
		t.Error("HasAnswered should find an existing word")
	}
	if s.HasAnswered("diena") {
		t.Error("HasAnswered should not find a missing word")
	}
}

func TestTimeLeft(t *testing.T) {
	expires := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: expires}

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"half a second left", expires.Add(-500 * time.Millisecond), 500},
		{"exactly expired", expires, 0},
		{"past expiry floors at zero", expires.Add(3 * time.Second), 0},
		{"a full minute left", expires.Add(-time.Minute), 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.TimeLeft(tt.now); got != tt.expected {
				t.Errorf("TimeLeft() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func ptrInt64(v int64) *int64 { return &v }
