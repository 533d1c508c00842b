package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wordrush/internal/models"
	"wordrush/internal/service"
)

// SessionHandler exposes session lifecycle endpoints
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// sessionCreated is the POST /sessions response payload
type sessionCreated struct {
	ID              string                 `json:"id"`
	ServerTime      time.Time              `json:"server_time"`
	StartedAt       time.Time              `json:"started_at"`
	ExpiresAt       time.Time              `json:"expires_at"`
	DurationSeconds int                    `json:"duration_seconds"`
	TargetWords     int                    `json:"target_words"`
	CurrentOrdinal  int                    `json:"current_ordinal"`
	Prompt          *service.PromptPayload `json:"prompt"`
}

// sessionDetail is the GET /sessions/{id} response payload
type sessionDetail struct {
	ID              string                 `json:"id"`
	Status          string                 `json:"status"`
	StartedAt       time.Time              `json:"started_at"`
	ExpiresAt       time.Time              `json:"expires_at"`
	DurationSeconds int                    `json:"duration_seconds"`
	TargetWords     int                    `json:"target_words"`
	CurrentOrdinal  int                    `json:"current_ordinal"`
	TotalScore      int                    `json:"total_score"`
	SubmittedAt     *time.Time             `json:"submitted_at"`
	TimeLeftMs      *int                   `json:"time_left_ms"`
	Answers         []models.Answer        `json:"answers"`
	Prompt          *service.PromptPayload `json:"prompt"`
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create()
	if err != nil {
		if errors.Is(err, service.ErrInsufficientPrompts) {
			writeError(w, http.StatusServiceUnavailable, "Not enough prompts are available to start a game.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create session.")
		return
	}

	writeJSON(w, http.StatusCreated, sessionCreated{
		ID:              sess.ID.String(),
		ServerTime:      time.Now().UTC(),
		StartedAt:       sess.StartedAt,
		ExpiresAt:       sess.ExpiresAt,
		DurationSeconds: sess.DurationSeconds,
		TargetWords:     sess.TargetWords,
		CurrentOrdinal:  sess.CurrentOrdinal,
		Prompt:          service.CurrentPromptPayload(sess),
	})
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load session.")
		return
	}

	answers := sess.Answers
	if answers == nil {
		answers = []models.Answer{}
	}
	writeJSON(w, http.StatusOK, sessionDetail{
		ID:              sess.ID.String(),
		Status:          sess.Status,
		StartedAt:       sess.StartedAt,
		ExpiresAt:       sess.ExpiresAt,
		DurationSeconds: sess.DurationSeconds,
		TargetWords:     sess.TargetWords,
		CurrentOrdinal:  sess.CurrentOrdinal,
		TotalScore:      sess.TotalScore,
		SubmittedAt:     sess.SubmittedAt,
		TimeLeftMs:      sess.TimeLeftMs,
		Answers:         answers,
		Prompt:          service.CurrentPromptPayload(sess),
	})
}

// attemptRequest is the POST /sessions/{id}/attempt body
type attemptRequest struct {
	Word string `json:"word"`
}

// Attempt handles POST /sessions/{id}/attempt. All gameplay outcomes,
// including invalid guesses, are 200; only protocol violations map to
// error statuses.
func (h *SessionHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.sessions.ProcessAttempt(id, req.Word, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "Session not found.")
		case errors.Is(err, service.ErrSessionExpired):
			writeError(w, http.StatusConflict, "Session expired.")
		case errors.Is(err, service.ErrSessionNotActive):
			writeError(w, http.StatusConflict, "Session is not active.")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to process attempt.")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// sessionID parses the {id} route parameter, replying 404 on garbage so
// unknown and malformed IDs are indistinguishable.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found.")
		return uuid.Nil, false
	}
	return id, true
}
