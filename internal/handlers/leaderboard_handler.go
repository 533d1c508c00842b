package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordrush/internal/service"
)

// defaultLimit is used when the leaderboard limit parameter is missing or
// not a number.
const defaultLimit = 100

// LeaderboardHandler exposes publication and ranking endpoints
type LeaderboardHandler struct {
	board *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(board *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{board: board}
}

// publishRequest is the POST /sessions/{id}/publish body
type publishRequest struct {
	PlayerName string `json:"player_name"`
}

// publishResponse is the successful publish payload
type publishResponse struct {
	LeaderboardEntryID int64 `json:"leaderboard_entry_id"`
	Rank               int   `json:"rank"`
}

// Publish handles POST /sessions/{id}/publish
func (h *LeaderboardHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	entry, rank, err := h.board.Publish(id, req.PlayerName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "Session not found.")
		case errors.Is(err, service.ErrInvalidPlayerName):
			writeError(w, http.StatusBadRequest, "Player name must be 1 to 64 characters.")
		case errors.Is(err, service.ErrSessionNotSubmitted):
			writeError(w, http.StatusConflict, "Session is not submitted.")
		case errors.Is(err, service.ErrAlreadyPublished):
			writeError(w, http.StatusConflict, "Session already published.")
		case errors.Is(err, service.ErrNotTop100):
			writeError(w, http.StatusForbidden, "Not in top 100.")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to publish score.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, publishResponse{
		LeaderboardEntryID: entry.ID,
		Rank:               rank,
	})
}

// leaderboardResponse wraps the ranked items
type leaderboardResponse struct {
	Items []service.RankedEntry `json:"items"`
}

// Top handles GET /leaderboard?limit=
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"))

	entries, err := h.board.Top(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard.")
		return
	}
	if entries == nil {
		entries = []service.RankedEntry{}
	}

	writeJSON(w, http.StatusOK, leaderboardResponse{Items: entries})
}

// parseLimit reads the limit query parameter, falling back to 100 on
// non-numeric input and clamping to [1, 100].
func parseLimit(raw string) int {
	limit := defaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}
