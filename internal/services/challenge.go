package services

import (
	"database/sql"
	"fmt"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

type ChallengeService struct {
	db *database.DB
}

func NewChallengeService(db *database.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

var challengeTypes = map[string]bool{
	"points":     true,
	"duration":   true,
	"activities": true,
	"distance":   true,
}

// CreateChallenge records a challenge and attaches the given teams by id.
// Team ids are stored as supplied; challenges never auto-complete.
func (s *ChallengeService) CreateChallenge(userID int, req *models.ChallengeCreateRequest) (*models.ChallengeView, error) {
	if req.Name == "" {
		return nil, ValidationError("challenge name is required")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, ValidationError("start_date and end_date are required")
	}
	if req.TargetValue <= 0 {
		return nil, ValidationError("target_value must be greater than zero")
	}
	challengeType := req.ChallengeType
	if challengeType == "" {
		challengeType = "points"
	}
	if !challengeTypes[challengeType] {
		return nil, ValidationError("challenge_type must be points, duration, activities or distance")
	}

	challenge := &models.Challenge{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		ChallengeType: challengeType,
		TargetValue:   req.TargetValue,
		CreatedBy:     userID,
		IsActive:      true,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExec(`
		INSERT INTO challenges (name, description, start_date, end_date,
			challenge_type, target_value, created_by, is_active)
		VALUES (:name, :description, :start_date, :end_date,
			:challenge_type, :target_value, :created_by, :is_active)
	`, challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge ID: %w", err)
	}
	challenge.ID = int(id)

	for _, teamID := range req.TeamIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO challenge_teams (challenge_id, team_id) VALUES (?, ?)`,
			challenge.ID, teamID); err != nil {
			return nil, fmt.Errorf("failed to attach team %d: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit challenge: %w", err)
	}

	return s.toView(challenge)
}

// ListChallenges returns all active challenges with their teams
func (s *ChallengeService) ListChallenges() ([]models.ChallengeView, error) {
	challenges := []models.Challenge{}
	err := s.db.Select(&challenges, `
		SELECT id, name, description, start_date, end_date, challenge_type,
			target_value, created_by, is_active
		FROM challenges WHERE is_active = TRUE ORDER BY start_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	views := make([]models.ChallengeView, 0, len(challenges))
	for i := range challenges {
		view, err := s.toView(&challenges[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetChallenge retrieves an active challenge by id
func (s *ChallengeService) GetChallenge(challengeID int) (*models.ChallengeView, error) {
	challenge, err := s.getActiveChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	return s.toView(challenge)
}

// UpdateChallenge lets the creator edit a challenge
func (s *ChallengeService) UpdateChallenge(userID, challengeID int, req *models.ChallengeUpdateRequest) (*models.ChallengeView, error) {
	challenge, err := s.getActiveChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.CreatedBy != userID {
		return nil, NotFoundError("challenge not found")
	}

	if req.Name != nil {
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.StartDate != nil {
		challenge.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		challenge.EndDate = *req.EndDate
	}
	if req.ChallengeType != nil {
		if !challengeTypes[*req.ChallengeType] {
			return nil, ValidationError("challenge_type must be points, duration, activities or distance")
		}
		challenge.ChallengeType = *req.ChallengeType
	}
	if req.TargetValue != nil {
		if *req.TargetValue <= 0 {
			return nil, ValidationError("target_value must be greater than zero")
		}
		challenge.TargetValue = *req.TargetValue
	}
	if req.IsActive != nil {
		challenge.IsActive = *req.IsActive
	}

	_, err = s.db.NamedExec(`
		UPDATE challenges SET name = :name, description = :description,
			start_date = :start_date, end_date = :end_date,
			challenge_type = :challenge_type, target_value = :target_value,
			is_active = :is_active
		WHERE id = :id
	`, challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}

	return s.toView(challenge)
}

// DeleteChallenge removes a challenge created by the caller
func (s *ChallengeService) DeleteChallenge(userID, challengeID int) error {
	challenge, err := s.getActiveChallenge(challengeID)
	if err != nil {
		return err
	}
	if challenge.CreatedBy != userID {
		return NotFoundError("challenge not found")
	}

	if _, err := s.db.Exec(`DELETE FROM challenges WHERE id = ?`, challengeID); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

func (s *ChallengeService) getActiveChallenge(challengeID int) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.Get(&challenge, `
		SELECT id, name, description, start_date, end_date, challenge_type,
			target_value, created_by, is_active
		FROM challenges WHERE id = ? AND is_active = TRUE
	`, challengeID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("challenge not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &challenge, nil
}

func (s *ChallengeService) toView(challenge *models.Challenge) (*models.ChallengeView, error) {
	// Attached ids may point at deleted teams; only existing teams are expanded.
	teams := []models.Team{}
	err := s.db.Select(&teams, `
		SELECT t.id, t.name, t.description, t.created_by, t.is_active, t.max_members, t.created_at
		FROM challenge_teams ct
		JOIN teams t ON t.id = ct.team_id
		WHERE ct.challenge_id = ?
		ORDER BY t.id
	`, challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenge teams: %w", err)
	}

	return &models.ChallengeView{Challenge: *challenge, ParticipatingTeams: teams}, nil
}
