package services

import (
	"fmt"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

// LeaderboardService is read-only; it ranks users by accumulated profile
// points and computes per-user aggregates on demand.
type LeaderboardService struct {
	db *database.DB
}

func NewLeaderboardService(db *database.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// UserLeaderboard returns the top 10 users by profile points, each annotated
// with their activity count
func (s *LeaderboardService) UserLeaderboard() ([]models.UserLeaderboardEntry, error) {
	entries := []models.UserLeaderboardEntry{}
	err := s.db.Select(&entries, `
		SELECT u.username,
			COALESCE(p.points, 0) AS points,
			(SELECT COUNT(*) FROM activities a WHERE a.user_id = u.id) AS activities_count
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY points DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to build user leaderboard: %w", err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Stats returns the caller's aggregate numbers. A user with no activities
// gets all-zero sums, never an error.
func (s *LeaderboardService) Stats(userID int) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.db.Get(&stats, `
		SELECT
			(SELECT COUNT(*) FROM activities WHERE user_id = ?) AS total_activities,
			COALESCE((SELECT points FROM profiles WHERE user_id = ?), 0) AS total_points,
			(SELECT COALESCE(SUM(duration_minutes), 0) FROM activities WHERE user_id = ?) AS total_duration,
			(SELECT COALESCE(SUM(distance), 0) FROM activities WHERE user_id = ?) AS total_distance,
			(SELECT COALESCE(SUM(calories_burned), 0) FROM activities WHERE user_id = ?) AS total_calories,
			(SELECT COUNT(*) FROM achievements WHERE user_id = ?) AS achievements_count
	`, userID, userID, userID, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &stats, nil
}
