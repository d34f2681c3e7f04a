package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/octofit/octofit-web/config"
	"github.com/octofit/octofit-web/internal/api"
	"github.com/octofit/octofit-web/internal/auth"
	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/live"
	"github.com/octofit/octofit-web/internal/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()
	log.Info().Str("path", cfg.Database.Path).Msg("database ready")

	auth.Init(cfg.Auth.SessionSecret)

	hub := live.NewHub()

	userService := services.NewUserService(db)
	activityService := services.NewActivityService(db, hub)
	achievementService := services.NewAchievementService(db)
	teamService := services.NewTeamService(db)
	challengeService := services.NewChallengeService(db)
	leaderboardService := services.NewLeaderboardService(db)

	handler := api.NewHandler(
		userService,
		activityService,
		achievementService,
		teamService,
		challengeService,
		leaderboardService,
	)

	r := mux.NewRouter()

	apiRouter := r.PathPrefix("/api").Subrouter()
	api.RegisterRoutes(apiRouter, handler)

	// Live event feed (requires a session like the rest of the API)
	liveRouter := r.NewRoute().Subrouter()
	liveRouter.Use(auth.Middleware)
	live.RegisterRoutes(liveRouter, hub)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("octofit server starting")

	if err := http.ListenAndServe(addr, c.Handler(r)); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
