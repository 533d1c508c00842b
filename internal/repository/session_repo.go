package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"wordrush/internal/database"
	"wordrush/internal/models"
)

const sessionColumns = `id, created_at, started_at, expires_at, duration_seconds,
	target_words, status, current_ordinal, total_score, submitted_at,
	time_left_ms, prompts, answers`

// SessionRepository handles game session database operations. The prompt
// snapshot and answer sequences are stored as JSON columns, frozen at
// creation/append time.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a freshly started session
func (r *SessionRepository) Create(s *models.Session) error {
	promptsJSON, err := marshalPrompts(s.Prompts)
	if err != nil {
		return err
	}
	answersJSON, err := marshalAnswers(s.Answers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO game_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		s.ID.String(), s.CreatedAt, s.StartedAt, s.ExpiresAt, s.DurationSeconds,
		s.TargetWords, s.Status, s.CurrentOrdinal, s.TotalScore, s.SubmittedAt,
		s.TimeLeftMs, promptsJSON, answersJSON,
	)
	return err
}

// GetByID retrieves a session without locking
func (r *SessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions WHERE id = ?"
	return r.scanSession(r.db.QueryRow(query, id.String()))
}

// GetByIDForUpdate retrieves a session inside q holding an exclusive row
// lock until the transaction ends. Attempt and publish processing must load
// through this so concurrent read-modify-write cycles serialize per session.
func (r *SessionRepository) GetByIDForUpdate(q database.DBTX, id uuid.UUID) (*models.Session, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions WHERE id = ?" + q.GetDialect().RowLockSuffix()
	return r.scanSession(q.QueryRow(query, id.String()))
}

// Update writes the fields attempt processing mutates. The prompt snapshot
// column is frozen at creation and never rewritten. Runs on q so the write
// stays inside the caller's locked transaction.
func (r *SessionRepository) Update(q database.DBTX, s *models.Session) error {
	answersJSON, err := marshalAnswers(s.Answers)
	if err != nil {
		return err
	}

	query := `
		UPDATE game_sessions
		SET status = ?, current_ordinal = ?, total_score = ?, submitted_at = ?,
		    time_left_ms = ?, answers = ?
		WHERE id = ?
	`
	_, err = q.Exec(query,
		s.Status, s.CurrentOrdinal, s.TotalScore, s.SubmittedAt,
		s.TimeLeftMs, answersJSON, s.ID.String(),
	)
	return err
}

// marshalPrompts encodes the frozen prompt snapshot sequence
func marshalPrompts(prompts []models.PromptSnapshot) (string, error) {
	if prompts == nil {
		prompts = []models.PromptSnapshot{}
	}
	b, err := json.Marshal(prompts)
	if err != nil {
		return "", fmt.Errorf("marshal prompts: %w", err)
	}
	return string(b), nil
}

// marshalAnswers encodes the append-only answer sequence
func marshalAnswers(answers []models.Answer) (string, error) {
	if answers == nil {
		answers = []models.Answer{}
	}
	b, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}
	return string(b), nil
}

// scanSession reads one session row
func (r *SessionRepository) scanSession(row *sql.Row) (*models.Session, error) {
	s := &models.Session{}
	var (
		idText      string
		submittedAt sql.NullTime
		timeLeftMs  sql.NullInt64
		promptsJSON []byte
		answersJSON []byte
	)

	err := row.Scan(
		&idText, &s.CreatedAt, &s.StartedAt, &s.ExpiresAt, &s.DurationSeconds,
		&s.TargetWords, &s.Status, &s.CurrentOrdinal, &s.TotalScore, &submittedAt,
		&timeLeftMs, &promptsJSON, &answersJSON,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.ID, err = uuid.Parse(idText)
	if err != nil {
		return nil, fmt.Errorf("parse session id %q: %w", idText, err)
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		s.SubmittedAt = &t
	}
	if timeLeftMs.Valid {
		ms := int(timeLeftMs.Int64)
		s.TimeLeftMs = &ms
	}
	if err := json.Unmarshal(promptsJSON, &s.Prompts); err != nil {
		return nil, fmt.Errorf("unmarshal prompts: %w", err)
	}
	if err := json.Unmarshal(answersJSON, &s.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}

	return s, nil
}
