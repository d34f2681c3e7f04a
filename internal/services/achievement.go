package services

import (
	"fmt"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

type AchievementService struct {
	db *database.DB
}

func NewAchievementService(db *database.DB) *AchievementService {
	return &AchievementService{db: db}
}

// ListAchievements returns the caller's earned achievements, newest first.
// Achievements are granted externally; there is no automatic unlocking.
func (s *AchievementService) ListAchievements(userID int) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	err := s.db.Select(&achievements, `
		SELECT id, user_id, name, description, badge_icon, points_required, earned_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY earned_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

// Grant records an achievement for a user. (user, name) is unique.
func (s *AchievementService) Grant(userID int, name, description, badgeIcon string, pointsRequired int) (*models.Achievement, error) {
	if name == "" {
		return nil, ValidationError("achievement name is required")
	}

	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM achievements WHERE user_id = ? AND name = ?`, userID, name); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ConflictError("achievement already earned")
	}

	result, err := s.db.Exec(`
		INSERT INTO achievements (user_id, name, description, badge_icon, points_required)
		VALUES (?, ?, ?, ?, ?)
	`, userID, name, description, badgeIcon, pointsRequired)
	if err != nil {
		return nil, fmt.Errorf("failed to grant achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	var achievement models.Achievement
	err = s.db.Get(&achievement, `
		SELECT id, user_id, name, description, badge_icon, points_required, earned_at
		FROM achievements WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievement back: %w", err)
	}

	return &achievement, nil
}
