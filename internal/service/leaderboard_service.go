package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wordrush/internal/database"
	"wordrush/internal/models"
	"wordrush/internal/repository"
)

// Publication failures the caller must branch on.
var (
	ErrSessionNotSubmitted = errors.New("session is not submitted")
	ErrInvalidPlayerName   = errors.New("player name must be 1 to 64 characters")
	ErrAlreadyPublished    = errors.New("session already published")
	ErrNotTop100           = errors.New("not in top 100")
)

// maxEntries caps the leaderboard size after pruning.
const maxEntries = 100

// RankedEntry is a leaderboard entry with its computed 1-based rank.
type RankedEntry struct {
	Rank       int       `json:"rank"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaderboardService owns ranked publication, top-100 admission control and
// pruning. It is the sole mutator of leaderboard entries.
type LeaderboardService struct {
	db       *database.DB
	sessions *repository.SessionRepository
	entries  *repository.LeaderboardRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(db *database.DB, sessions *repository.SessionRepository, entries *repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{db: db, sessions: sessions, entries: entries}
}

// Publish records a submitted session on the leaderboard and returns the
// entry with its post-prune rank. The whole check-rank-insert-prune cycle
// runs in one transaction. A successfully inserted entry can still come
// back ErrNotTop100 if stronger concurrent publishes displaced it between
// the admission check and the rank recompute; the entry stays persisted and
// the next publish's pruning sweeps it.
func (s *LeaderboardService) Publish(sessionID uuid.UUID, playerName string) (*models.LeaderboardEntry, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback()

	sess, err := s.sessions.GetByIDForUpdate(tx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrSessionNotFound
		}
		return nil, 0, err
	}
	if sess.Status != models.StatusSubmitted {
		return nil, 0, ErrSessionNotSubmitted
	}

	name, err := validatePlayerName(playerName)
	if err != nil {
		return nil, 0, err
	}

	exists, err := s.entries.ExistsForSession(tx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if exists {
		return nil, 0, ErrAlreadyPublished
	}

	admissible, _, err := s.topCandidate(tx, sess.TotalScore)
	if err != nil {
		return nil, 0, err
	}
	if !admissible {
		return nil, 0, ErrNotTop100
	}

	entry := &models.LeaderboardEntry{
		SessionID:  sessionID,
		PlayerName: name,
		Score:      sess.TotalScore,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.entries.Insert(tx, entry); err != nil {
		return nil, 0, fmt.Errorf("insert entry: %w", err)
	}

	ranked, err := s.entries.Ranked(tx, 0)
	if err != nil {
		return nil, 0, err
	}
	if len(ranked) > maxEntries {
		stale := make([]int64, 0, len(ranked)-maxEntries)
		for _, e := range ranked[maxEntries:] {
			stale = append(stale, e.ID)
		}
		if err := s.entries.DeleteByIDs(tx, stale); err != nil {
			return nil, 0, fmt.Errorf("prune: %w", err)
		}
		ranked = ranked[:maxEntries]
	}

	rank := rankOf(ranked, entry.ID)
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit publish: %w", err)
	}
	if rank == 0 {
		// Displaced between admission check and insert; accepted then
		// pruned, so the commit above stands.
		return nil, 0, ErrNotTop100
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Int64("entry_id", entry.ID).
		Int("score", entry.Score).
		Int("rank", rank).
		Msg("leaderboard entry published")
	return entry, rank, nil
}

// Top returns the ranked leaderboard. limit is clamped to [1, 100].
func (s *LeaderboardService) Top(limit int) ([]RankedEntry, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > maxEntries {
		limit = maxEntries
	}

	entries, err := s.entries.Ranked(s.db, limit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{
			Rank:       i + 1,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			CreatedAt:  e.CreatedAt,
		}
	}
	return ranked, nil
}

// TopCandidate reports whether score would currently qualify for the top
// 100, along with the admission threshold when the board is full. Pure
// read; shared with attempt processing for its preview.
func (s *LeaderboardService) TopCandidate(score int) (bool, *int, error) {
	return s.topCandidate(s.db, score)
}

func (s *LeaderboardService) topCandidate(q database.DBTX, score int) (bool, *int, error) {
	scores, err := s.entries.TopScores(q, maxEntries)
	if err != nil {
		return false, nil, err
	}
	threshold := admissionThreshold(scores)
	if threshold == nil {
		return true, nil, nil
	}
	return score >= *threshold, threshold, nil
}

// validatePlayerName trims the name and enforces the 1-64 character bound.
func validatePlayerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(name); n < 1 || n > 64 {
		return "", ErrInvalidPlayerName
	}
	return name, nil
}

// admissionThreshold returns the 100th-ranked score, or nil while fewer
// than 100 entries exist (every score admissible).
func admissionThreshold(rankedScores []int) *int {
	if len(rankedScores) < maxEntries {
		return nil
	}
	t := rankedScores[len(rankedScores)-1]
	return &t
}

// rankOf returns the 1-based position of entry id in the ranked list, or 0
// when the entry is not present.
func rankOf(ranked []models.LeaderboardEntry, id int64) int {
	for i := range ranked {
		if ranked[i].ID == id {
			return i + 1
		}
	}
	return 0
}
