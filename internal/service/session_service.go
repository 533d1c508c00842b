package service

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wordrush/internal/database"
	"wordrush/internal/models"
	"wordrush/internal/repository"
	"wordrush/internal/scoring"
	"wordrush/internal/validation"
)

// Protocol violations. These mean the caller interacted with a session it
// should not have; the handler layer maps them to 4xx/5xx.
var (
	ErrInsufficientPrompts = errors.New("not enough prompts to create a session")
	ErrSessionExpired      = errors.New("session expired")
	ErrSessionNotActive    = errors.New("session not active")
	ErrSessionNotFound     = errors.New("session not found")
)

// Gameplay outcome codes carried in AttemptResult.ErrorCode. A wrong guess
// is an expected game event, not an error, so these always travel as data.
const (
	CodeEmpty           = "empty"
	CodeDuplicate       = "duplicate"
	CodeNotInDictionary = "not_in_dictionary"
	CodeRuleMismatch    = "rule_mismatch"
)

// Dictionary answers membership queries for normalized words.
type Dictionary interface {
	Exists(normalized string) (bool, error)
}

// AdmissionPreviewer reports whether a score would currently make the
// top 100, without side effects.
type AdmissionPreviewer interface {
	TopCandidate(score int) (bool, *int, error)
}

// PromptPayload is the client-facing view of the prompt to satisfy next.
type PromptPayload struct {
	Ordinal         int         `json:"ordinal"`
	PromptID        int64       `json:"prompt_id"`
	Description     string      `json:"description"`
	Rule            models.Rule `json:"rule"`
	ValidWordsCount *int        `json:"valid_words_count"`
}

// LeaderboardPreview tells the client whether the running score would
// currently qualify for publication.
type LeaderboardPreview struct {
	IsTop100Candidate bool `json:"is_top_100_candidate"`
	MinScoreForTop100 *int `json:"min_score_for_top_100"`
}

// AttemptResult is the full payload returned for every gameplay outcome,
// valid or not.
type AttemptResult struct {
	SessionID      string             `json:"session_id"`
	IsValid        bool               `json:"is_valid"`
	ErrorCode      *string            `json:"error_code"`
	TotalScore     int                `json:"total_score"`
	CurrentOrdinal int                `json:"current_ordinal"`
	TargetWords    int                `json:"target_words"`
	TimeLeftMs     int                `json:"time_left_ms"`
	JustScored     *scoring.Points    `json:"just_scored"`
	Prompt         *PromptPayload     `json:"prompt"`
	IsFinished     bool               `json:"is_finished"`
	FinishedReason *string            `json:"finished_reason"`
	Leaderboard    LeaderboardPreview `json:"leaderboard"`
}

// SessionService owns the session state machine: creation, attempt
// processing, lazy expiry and completion.
type SessionService struct {
	db              *database.DB
	sessions        *repository.SessionRepository
	prompts         *repository.PromptRepository
	dict            Dictionary
	matcher         *validation.Matcher
	board           AdmissionPreviewer
	durationSeconds int
	targetWords     int
}

// NewSessionService creates a new session service
func NewSessionService(
	db *database.DB,
	sessions *repository.SessionRepository,
	prompts *repository.PromptRepository,
	dict Dictionary,
	matcher *validation.Matcher,
	board AdmissionPreviewer,
	durationSeconds, targetWords int,
) *SessionService {
	return &SessionService{
		db:              db,
		sessions:        sessions,
		prompts:         prompts,
		dict:            dict,
		matcher:         matcher,
		board:           board,
		durationSeconds: durationSeconds,
		targetWords:     targetWords,
	}
}

// Create starts a new session from a random, non-repeating sample of
// prompts, frozen as snapshots for the session's lifetime.
func (s *SessionService) Create() (*models.Session, error) {
	prompts, err := s.prompts.SampleRandom(s.targetWords)
	if err != nil {
		return nil, fmt.Errorf("sample prompts: %w", err)
	}
	if len(prompts) < s.targetWords {
		return nil, ErrInsufficientPrompts
	}

	snapshots := make([]models.PromptSnapshot, len(prompts))
	for i, p := range prompts {
		snapshots[i] = models.PromptSnapshot{
			PromptID:        p.ID,
			Description:     p.Description,
			Rule:            p.Rule,
			ValidWordsCount: p.ValidWordsCount,
		}
	}

	now := time.Now().UTC()
	sess := &models.Session{
		ID:              uuid.New(),
		CreatedAt:       now,
		StartedAt:       now,
		ExpiresAt:       now.Add(time.Duration(s.durationSeconds) * time.Second),
		DurationSeconds: s.durationSeconds,
		TargetWords:     s.targetWords,
		Status:          models.StatusActive,
		CurrentOrdinal:  1,
		TotalScore:      0,
		Prompts:         snapshots,
		Answers:         []models.Answer{},
	}

	if err := s.sessions.Create(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	log.Info().
		Str("session_id", sess.ID.String()).
		Int("duration_seconds", s.durationSeconds).
		Int("target_words", s.targetWords).
		Msg("session created")
	return sess, nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(id uuid.UUID) (*models.Session, error) {
	sess, err := s.sessions.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// ProcessAttempt runs one guess through the validation pipeline and mutates
// the session accordingly. The whole read-validate-mutate-write cycle runs
// in a single transaction holding the session's row lock, so concurrent
// attempts on the same session serialize.
func (s *SessionService) ProcessAttempt(id uuid.UUID, rawWord string, now time.Time) (*AttemptResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	sess, err := s.sessions.GetByIDForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	out, evalErr := s.evaluateAttempt(sess, rawWord, now)
	if evalErr != nil {
		if out.expiredNow {
			// Lazy expiry: flip the stored status exactly once
			if err := s.sessions.Update(tx, sess); err != nil {
				return nil, fmt.Errorf("persist expiry: %w", err)
			}
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("commit expiry: %w", err)
			}
			log.Info().Str("session_id", sess.ID.String()).Msg("session expired")
		}
		return nil, evalErr
	}

	if out.valid {
		if err := s.sessions.Update(tx, sess); err != nil {
			return nil, fmt.Errorf("persist attempt: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attempt: %w", err)
	}

	if out.valid {
		log.Info().
			Str("session_id", sess.ID.String()).
			Int("ordinal", len(sess.Answers)).
			Int("total_score", sess.TotalScore).
			Str("status", sess.Status).
			Msg("attempt accepted")
	}

	return s.buildResult(sess, now, out)
}

// attemptOutcome is the internal result of one pass through the pipeline.
type attemptOutcome struct {
	valid          bool
	code           string
	justScored     *scoring.Points
	finished       bool
	finishedReason string
	expiredNow     bool // status flipped to expired during this call
}

// evaluateAttempt applies the attempt pipeline to sess in memory: expiry,
// normalization, duplicate, dictionary and rule checks, then scoring and,
// on the final word, completion with the one-time time bonus. Storage is
// only touched through the dictionary lookup.
func (s *SessionService) evaluateAttempt(sess *models.Session, rawWord string, now time.Time) (attemptOutcome, error) {
	var out attemptOutcome

	switch sess.Status {
	case models.StatusSubmitted:
		return out, ErrSessionNotActive
	case models.StatusExpired:
		return out, ErrSessionExpired
	}

	if now.After(sess.ExpiresAt) {
		sess.Status = models.StatusExpired
		out.expiredNow = true
		return out, ErrSessionExpired
	}

	prompt := sess.CurrentPrompt()
	if prompt == nil {
		return out, ErrSessionNotActive
	}

	normalized := validation.Normalize(rawWord)
	if normalized == "" {
		out.code = CodeEmpty
		return out, nil
	}

	if sess.HasAnswered(normalized) {
		out.code = CodeDuplicate
		return out, nil
	}

	exists, err := s.dict.Exists(normalized)
	if err != nil {
		return out, fmt.Errorf("dictionary lookup: %w", err)
	}
	if !exists {
		out.code = CodeNotInDictionary
		return out, nil
	}

	if !s.matcher.Matches(normalized, prompt.Rule) {
		out.code = CodeRuleMismatch
		return out, nil
	}

	points := scoring.WordPoints(sess.CurrentOrdinal, utf8.RuneCountInString(normalized))
	sess.Answers = append(sess.Answers, models.Answer{
		Ordinal:           sess.CurrentOrdinal,
		PromptID:          prompt.PromptID,
		PromptDescription: prompt.Description,
		Word:              rawWord,
		NormalizedWord:    normalized,
		IndexPoints:       points.IndexPoints,
		LengthPoints:      points.LengthPoints,
		TotalPoints:       points.Total,
		CreatedAt:         now,
	})
	sess.TotalScore += points.Total
	sess.CurrentOrdinal++
	out.valid = true
	out.justScored = &points

	if sess.CurrentOrdinal > sess.TargetWords {
		left := sess.TimeLeft(now)
		sess.TotalScore += scoring.TimeBonus(left)
		sess.TimeLeftMs = &left
		submitted := now
		sess.SubmittedAt = &submitted
		sess.Status = models.StatusSubmitted
		out.finished = true
		out.finishedReason = "completed"
	}

	return out, nil
}

// buildResult assembles the attempt payload, including the side-effect-free
// leaderboard admission preview.
func (s *SessionService) buildResult(sess *models.Session, now time.Time, out attemptOutcome) (*AttemptResult, error) {
	isCandidate, threshold, err := s.board.TopCandidate(sess.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("admission preview: %w", err)
	}

	timeLeft := 0
	if sess.TimeLeftMs != nil {
		timeLeft = *sess.TimeLeftMs
	} else if sess.Status == models.StatusActive {
		timeLeft = sess.TimeLeft(now)
	}

	res := &AttemptResult{
		SessionID:      sess.ID.String(),
		IsValid:        out.valid,
		TotalScore:     sess.TotalScore,
		CurrentOrdinal: sess.CurrentOrdinal,
		TargetWords:    sess.TargetWords,
		TimeLeftMs:     timeLeft,
		JustScored:     out.justScored,
		Prompt:         CurrentPromptPayload(sess),
		IsFinished:     out.finished,
		Leaderboard: LeaderboardPreview{
			IsTop100Candidate: isCandidate,
			MinScoreForTop100: threshold,
		},
	}
	if out.code != "" {
		code := out.code
		res.ErrorCode = &code
	}
	if out.finishedReason != "" {
		reason := out.finishedReason
		res.FinishedReason = &reason
	}
	return res, nil
}

// CurrentPromptPayload returns the client view of the session's current
// prompt, or nil when the session is finished or inactive.
func CurrentPromptPayload(sess *models.Session) *PromptPayload {
	prompt := sess.CurrentPrompt()
	if prompt == nil {
		return nil
	}
	return &PromptPayload{
		Ordinal:         sess.CurrentOrdinal,
		PromptID:        prompt.PromptID,
		Description:     prompt.Description,
		Rule:            prompt.Rule,
		ValidWordsCount: prompt.ValidWordsCount,
	}
}
