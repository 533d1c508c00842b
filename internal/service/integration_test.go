package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"wordrush/internal/database"
	"wordrush/internal/models"
	"wordrush/internal/repository"
	"wordrush/internal/validation"
)

// newIntegrationEnv brings up a throwaway SQLite database with the real
// schema and seeds enough prompts and words to play full sessions.
func newIntegrationEnv(t *testing.T) (*SessionService, *LeaderboardService, *repository.WordRepository) {
	t.Helper()

	db, err := database.Initialize("sqlite", filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatalf("initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	wordRepo := repository.NewWordRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository()

	for i := 0; i < 21; i++ {
		desc := fmt.Sprintf("Vārdi, kas satur 'a' (%d)", i)
		if _, _, err := promptRepo.GetOrCreate(desc, models.Rule{Type: models.RuleContains, Value: "a"}); err != nil {
			t.Fatalf("seed prompt: %v", err)
		}
	}

	words := make([]string, 30)
	for i := range words {
		words[i] = fmt.Sprintf("vards%02d", i)
	}
	if _, err := wordRepo.BulkInsert(words); err != nil {
		t.Fatalf("seed words: %v", err)
	}

	matcher := validation.NewMatcher(validation.DefaultDiacriticLetters)
	boardSvc := NewLeaderboardService(db, sessionRepo, leaderboardRepo)
	sessSvc := NewSessionService(db, sessionRepo, promptRepo, wordRepo, matcher, boardSvc, 60, 21)
	return sessSvc, boardSvc, wordRepo
}

// playToCompletion submits 21 distinct valid words and returns the
// submitted session's result.
func playToCompletion(t *testing.T, svc *SessionService, id uuid.UUID) *AttemptResult {
	t.Helper()

	var last *AttemptResult
	for i := 0; i < 21; i++ {
		res, err := svc.ProcessAttempt(id, fmt.Sprintf("vards%02d", i), time.Now().UTC())
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if !res.IsValid {
			t.Fatalf("attempt %d rejected: %v", i+1, *res.ErrorCode)
		}
		last = res
	}
	if !last.IsFinished {
		t.Fatal("session should be finished after 21 valid words")
	}
	return last
}

func TestGameplayIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sessSvc, _, _ := newIntegrationEnv(t)

	sess, err := sessSvc.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Prompts) != 21 || sess.CurrentOrdinal != 1 || sess.Status != models.StatusActive {
		t.Fatalf("unexpected new session: %+v", sess)
	}

	// invalid guesses leave the session untouched
	res, err := sessSvc.ProcessAttempt(sess.ID, "nezinamsvards", time.Now().UTC())
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if res.IsValid || *res.ErrorCode != CodeNotInDictionary {
		t.Errorf("expected not_in_dictionary, got %+v", res)
	}
	if res.CurrentOrdinal != 1 {
		t.Errorf("invalid guess advanced the ordinal: %d", res.CurrentOrdinal)
	}

	final := playToCompletion(t, sessSvc, sess.ID)
	if final.Prompt != nil {
		t.Error("finished session should have no next prompt")
	}

	// reload and verify the persisted terminal state
	stored, err := sessSvc.Get(sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if stored.Status != models.StatusSubmitted {
		t.Errorf("Status = %q, want submitted", stored.Status)
	}
	if stored.TimeLeftMs == nil || stored.SubmittedAt == nil {
		t.Error("completion fields not persisted")
	}
	if len(stored.Answers) != 21 || stored.CurrentOrdinal != 22 {
		t.Errorf("answers/ordinal = %d/%d, want 21/22", len(stored.Answers), stored.CurrentOrdinal)
	}

	// attempts after submission are protocol violations
	if _, err := sessSvc.ProcessAttempt(sess.ID, "vards25", time.Now().UTC()); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("err = %v, want ErrSessionNotActive", err)
	}
}

func TestPublishIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sessSvc, boardSvc, _ := newIntegrationEnv(t)

	sess, err := sessSvc.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	// publishing an active session is rejected
	if _, _, err := boardSvc.Publish(sess.ID, "Anna"); !errors.Is(err, ErrSessionNotSubmitted) {
		t.Errorf("err = %v, want ErrSessionNotSubmitted", err)
	}

	playToCompletion(t, sessSvc, sess.ID)

	entry, rank, err := boardSvc.Publish(sess.ID, "  Anna  ")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}
	if entry.PlayerName != "Anna" {
		t.Errorf("PlayerName = %q, want trimmed Anna", entry.PlayerName)
	}

	// second publish for the same session fails and adds nothing
	if _, _, err := boardSvc.Publish(sess.ID, "Anna"); !errors.Is(err, ErrAlreadyPublished) {
		t.Errorf("err = %v, want ErrAlreadyPublished", err)
	}
	top, err := boardSvc.Top(100)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 {
		t.Errorf("leaderboard size = %d, want 1", len(top))
	}

	if _, _, err := boardSvc.Publish(uuid.New(), "Anna"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestLeaderboardOrderingIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sessSvc, boardSvc, _ := newIntegrationEnv(t)

	// three completed sessions publish; scores depend on play speed, so
	// verify ordering properties rather than exact values
	for i := 0; i < 3; i++ {
		sess, err := sessSvc.Create()
		if err != nil {
			t.Fatalf("create session %d: %v", i, err)
		}
		playToCompletion(t, sessSvc, sess.ID)
		if _, _, err := boardSvc.Publish(sess.ID, fmt.Sprintf("Player%d", i)); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	top, err := boardSvc.Top(100)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("leaderboard size = %d, want 3", len(top))
	}
	for i, e := range top {
		if e.Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, e.Rank, i+1)
		}
		if i > 0 && top[i-1].Score < e.Score {
			t.Errorf("scores not non-increasing: %d before %d", top[i-1].Score, e.Score)
		}
		if i > 0 && top[i-1].Score == e.Score && top[i-1].CreatedAt.After(e.CreatedAt) {
			t.Errorf("tie at score %d not broken by earlier created_at", e.Score)
		}
	}
}
