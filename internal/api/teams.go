package api

import (
	"fmt"
	"net/http"

	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/models"
)

// GET /api/teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// POST /api/teams
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.TeamCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.teams.CreateTeam(auth.UserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

// GET /api/teams/my-teams
func (h *Handler) MyTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.MyTeams(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// GET /api/teams/{id}
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.GetTeam(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// PUT /api/teams/{id}
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.TeamUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.teams.UpdateTeam(auth.UserID(r), pathID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// DELETE /api/teams/{id}
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.DeleteTeam(auth.UserID(r), pathID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// POST /api/teams/{id}/join
func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	teamID := pathID(r)
	if err := h.teams.JoinTeam(auth.UserID(r), teamID); err != nil {
		respondError(w, err)
		return
	}

	team, err := h.teams.GetTeam(teamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully joined %s", team.Name),
	})
}

// POST /api/teams/{id}/leave
func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	teamID := pathID(r)
	team, err := h.teams.GetTeam(teamID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.teams.LeaveTeam(auth.UserID(r), teamID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully left %s", team.Name),
	})
}

// GET /api/teams/leaderboard
func (h *Handler) TeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.teams.Leaderboard()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
