package repository

import (
	"strings"

	"github.com/google/uuid"

	"wordrush/internal/database"
	"wordrush/internal/models"
)

// rankedOrder sorts best score first; ties resolve to the earlier
// publication. The trailing id keeps ordering deterministic when two
// entries share score and timestamp.
const rankedOrder = " ORDER BY score DESC, created_at ASC, id ASC"

// LeaderboardRepository handles leaderboard database operations. Methods
// take a DBTX so publish can run its whole critical section in one
// transaction while read-only queries go straight to the pool.
type LeaderboardRepository struct{}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{}
}

// Ranked retrieves entries in rank order. limit <= 0 retrieves all.
func (r *LeaderboardRepository) Ranked(q database.DBTX, limit int) ([]models.LeaderboardEntry, error) {
	query := "SELECT id, session_id, player_name, score, created_at FROM leaderboard_entries" + rankedOrder
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var sessionID string
		if err := rows.Scan(&e.ID, &sessionID, &e.PlayerName, &e.Score, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// TopScores retrieves just the scores of the first limit ranked entries
func (r *LeaderboardRepository) TopScores(q database.DBTX, limit int) ([]int, error) {
	query := "SELECT score FROM leaderboard_entries" + rankedOrder + " LIMIT ?"
	rows, err := q.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}

// ExistsForSession reports whether a session has already been published
func (r *LeaderboardRepository) ExistsForSession(q database.DBTX, sessionID uuid.UUID) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM leaderboard_entries WHERE session_id = ?"
	if err := q.QueryRow(query, sessionID.String()).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert persists a new entry and fills in its generated ID
func (r *LeaderboardRepository) Insert(q database.DBTX, e *models.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboard_entries (session_id, player_name, score, created_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := q.ExecReturningID(query, e.SessionID.String(), e.PlayerName, e.Score, e.CreatedAt)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// DeleteByIDs removes the given entries (used by pruning)
func (r *LeaderboardRepository) DeleteByIDs(q database.DBTX, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := q.Exec("DELETE FROM leaderboard_entries WHERE id IN ("+placeholders+")", args...)
	return err
}

// Count returns the number of leaderboard entries
func (r *LeaderboardRepository) Count(q database.DBTX) (int64, error) {
	var count int64
	err := q.QueryRow("SELECT COUNT(*) FROM leaderboard_entries").Scan(&count)
	return count, err
}
