package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is a published session result. At most one entry exists
// per session. Ranking is score descending, then created_at ascending, so
// earlier publication wins ties.
type LeaderboardEntry struct {
	ID         int64
	SessionID  uuid.UUID
	PlayerName string
	Score      int
	CreatedAt  time.Time
}
