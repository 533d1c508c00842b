package models

import (
	"time"

	"github.com/google/uuid"
)

// Session statuses. A session only ever moves active -> submitted or
// active -> expired.
const (
	StatusActive    = "active"
	StatusSubmitted = "submitted"
	StatusExpired   = "expired"
)

// Answer records one accepted word with its scoring breakdown. The answer
// list on a session is append-only and never reorders.
type Answer struct {
	Ordinal           int       `json:"ordinal"`
	PromptID          int64     `json:"prompt_id"`
	PromptDescription string    `json:"prompt_description"`
	Word              string    `json:"word"`
	NormalizedWord    string    `json:"normalized_word"`
	IndexPoints       int       `json:"points_index"`
	LengthPoints      int       `json:"points_length"`
	TotalPoints       int       `json:"points_total"`
	CreatedAt         time.Time `json:"created_at"`
}

// Session is a single timed game. Prompts is a frozen snapshot sequence of
// length TargetWords. CurrentOrdinal is the 1-based index of the next prompt
// to satisfy and ends at TargetWords+1 once the session completes.
// Invariant: len(Answers) == CurrentOrdinal-1.
type Session struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	StartedAt       time.Time
	ExpiresAt       time.Time
	DurationSeconds int
	TargetWords     int
	Status          string
	CurrentOrdinal  int
	TotalScore      int
	SubmittedAt     *time.Time
	TimeLeftMs      *int
	Prompts         []PromptSnapshot
	Answers         []Answer
}

// CurrentPrompt returns the snapshot CurrentOrdinal points at, or nil when
// the session is not active or the ordinal is out of range.
func (s *Session) CurrentPrompt() *PromptSnapshot {
	if s.Status != StatusActive {
		return nil
	}
	idx := s.CurrentOrdinal - 1
	if idx < 0 || idx >= len(s.Prompts) {
		return nil
	}
	return &s.Prompts[idx]
}

// HasAnswered reports whether a normalized word was already accepted in
// this session.
func (s *Session) HasAnswered(normalized string) bool {
	for i := range s.Answers {
		if s.Answers[i].NormalizedWord == normalized {
			return true
		}
	}
	return false
}

// TimeLeft returns the remaining play time in whole milliseconds, floored
// at zero.
func (s *Session) TimeLeft(now time.Time) int {
	ms := s.ExpiresAt.Sub(now).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms)
}
