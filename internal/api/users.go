package api

import (
	"net/http"

	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/models"
)

// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.Register(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.Authenticate(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := auth.SignIn(w, r, user.ID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
	})
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// GET /api/auth/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	detail, err := h.users.GetUserDetail(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// PUT /api/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.UpdateUser(auth.UserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GET /api/auth/profile/details
func (h *Handler) GetProfileDetails(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(auth.UserID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// PUT /api/auth/profile/details
func (h *Handler) UpdateProfileDetails(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	profile, err := h.users.UpdateProfile(auth.UserID(r), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GET /api/auth/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
