package api

import (
	"net/http"

	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/models"
)

// GET /api/teams/challenges
func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.ListChallenges()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, challenges)
}

// POST /api/teams/challenges
func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req models.ChallengeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	challenge, err := h.challenges.CreateChallenge(auth.UserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, challenge)
}

// GET /api/teams/challenges/{id}
func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challenges.GetChallenge(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, challenge)
}

// PUT /api/teams/challenges/{id}
func (h *Handler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	var req models.ChallengeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	challenge, err := h.challenges.UpdateChallenge(auth.UserID(r), pathID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, challenge)
}

// DELETE /api/teams/challenges/{id}
func (h *Handler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := h.challenges.DeleteChallenge(auth.UserID(r), pathID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
