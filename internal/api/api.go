package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/services"
)

// Handler bundles the services behind the REST surface
type Handler struct {
	users        *services.UserService
	activities   *services.ActivityService
	achievements *services.AchievementService
	teams        *services.TeamService
	challenges   *services.ChallengeService
	leaderboards *services.LeaderboardService
}

func NewHandler(
	users *services.UserService,
	activities *services.ActivityService,
	achievements *services.AchievementService,
	teams *services.TeamService,
	challenges *services.ChallengeService,
	leaderboards *services.LeaderboardService,
) *Handler {
	return &Handler{
		users:        users,
		activities:   activities,
		achievements: achievements,
		teams:        teams,
		challenges:   challenges,
		leaderboards: leaderboards,
	}
}

// RegisterRoutes mounts the REST surface under the given /api subrouter.
// Registration and login are public; everything else requires a session.
func RegisterRoutes(r *mux.Router, h *Handler) {
	public := r.PathPrefix("/auth").Subrouter()
	public.HandleFunc("/register", h.Register).Methods("POST")
	public.HandleFunc("/login", h.Login).Methods("POST")

	authed := r.NewRoute().Subrouter()
	authed.Use(auth.Middleware)

	authed.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	authed.HandleFunc("/auth/profile", h.GetProfile).Methods("GET")
	authed.HandleFunc("/auth/profile", h.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/auth/profile/details", h.GetProfileDetails).Methods("GET")
	authed.HandleFunc("/auth/profile/details", h.UpdateProfileDetails).Methods("PUT")
	authed.HandleFunc("/auth/users", h.ListUsers).Methods("GET")

	authed.HandleFunc("/activities/types", h.ListActivityTypes).Methods("GET")
	authed.HandleFunc("/activities/achievements", h.ListAchievements).Methods("GET")
	authed.HandleFunc("/activities/stats", h.Stats).Methods("GET")
	authed.HandleFunc("/activities/leaderboard", h.UserLeaderboard).Methods("GET")
	authed.HandleFunc("/activities", h.ListActivities).Methods("GET")
	authed.HandleFunc("/activities", h.CreateActivity).Methods("POST")
	authed.HandleFunc("/activities/{id:[0-9]+}", h.GetActivity).Methods("GET")
	authed.HandleFunc("/activities/{id:[0-9]+}", h.UpdateActivity).Methods("PUT")
	authed.HandleFunc("/activities/{id:[0-9]+}", h.DeleteActivity).Methods("DELETE")

	authed.HandleFunc("/teams/my-teams", h.MyTeams).Methods("GET")
	authed.HandleFunc("/teams/leaderboard", h.TeamLeaderboard).Methods("GET")
	authed.HandleFunc("/teams/challenges", h.ListChallenges).Methods("GET")
	authed.HandleFunc("/teams/challenges", h.CreateChallenge).Methods("POST")
	authed.HandleFunc("/teams/challenges/{id:[0-9]+}", h.GetChallenge).Methods("GET")
	authed.HandleFunc("/teams/challenges/{id:[0-9]+}", h.UpdateChallenge).Methods("PUT")
	authed.HandleFunc("/teams/challenges/{id:[0-9]+}", h.DeleteChallenge).Methods("DELETE")
	authed.HandleFunc("/teams", h.ListTeams).Methods("GET")
	authed.HandleFunc("/teams", h.CreateTeam).Methods("POST")
	authed.HandleFunc("/teams/{id:[0-9]+}", h.GetTeam).Methods("GET")
	authed.HandleFunc("/teams/{id:[0-9]+}", h.UpdateTeam).Methods("PUT")
	authed.HandleFunc("/teams/{id:[0-9]+}", h.DeleteTeam).Methods("DELETE")
	authed.HandleFunc("/teams/{id:[0-9]+}/join", h.JoinTeam).Methods("POST")
	authed.HandleFunc("/teams/{id:[0-9]+}/leave", h.LeaveTeam).Methods("POST")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the service error taxonomy to HTTP statuses
func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr services.ValidationError
		conflictErr   services.ConflictError
		notFoundErr   services.NotFoundError
		authErr       services.AuthError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": conflictErr.Error()})
	case errors.As(err, &notFoundErr):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": notFoundErr.Error()})
	case errors.As(err, &authErr):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Error()})
	default:
		log.Error().Err(err).Msg("internal error")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.ValidationError("invalid request body")
	}
	return nil
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
