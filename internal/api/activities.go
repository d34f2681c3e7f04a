package api

import (
	"net/http"

	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/models"
)

// GET /api/activities/types
func (h *Handler) ListActivityTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.activities.ListActivityTypes()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// GET /api/activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.ListActivities(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// POST /api/activities
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	activity, err := h.activities.LogActivity(auth.UserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// GET /api/activities/{id}
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activities.GetActivity(auth.UserID(r), pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// PUT /api/activities/{id}
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	activity, err := h.activities.UpdateActivity(auth.UserID(r), pathID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// DELETE /api/activities/{id}
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.DeleteActivity(auth.UserID(r), pathID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GET /api/activities/achievements
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.achievements.ListAchievements(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, achievements)
}

// GET /api/activities/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leaderboards.Stats(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GET /api/activities/leaderboard
func (h *Handler) UserLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboards.UserLeaderboard()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
