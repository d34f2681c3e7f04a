package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// CreateTeam creates a new team. The creator is not added as a member;
// joining is always an explicit action.
func (s *TeamService) CreateTeam(userID int, req *models.TeamCreateRequest) (*models.TeamView, error) {
	if req.Name == "" {
		return nil, ValidationError("team name is required")
	}
	if req.MaxMembers <= 0 {
		return nil, ValidationError("max_members must be greater than zero")
	}

	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM teams WHERE name = ?`, req.Name); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ValidationError("team name already exists")
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
		IsActive:    true,
		MaxMembers:  req.MaxMembers,
		CreatedAt:   time.Now(),
	}

	result, err := s.db.NamedExec(`
		INSERT INTO teams (name, description, created_by, is_active, max_members, created_at)
		VALUES (:name, :description, :created_by, :is_active, :max_members, :created_at)
	`, team)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get team ID: %w", err)
	}
	team.ID = int(id)

	return s.toView(team)
}

// ListTeams returns all active teams with their aggregates
func (s *TeamService) ListTeams() ([]models.TeamView, error) {
	teams := []models.Team{}
	err := s.db.Select(&teams, `
		SELECT id, name, description, created_by, is_active, max_members, created_at
		FROM teams WHERE is_active = TRUE ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return s.toViews(teams)
}

// MyTeams returns the active teams the user belongs to
func (s *TeamService) MyTeams(userID int) ([]models.TeamView, error) {
	teams := []models.Team{}
	err := s.db.Select(&teams, `
		SELECT t.id, t.name, t.description, t.created_by, t.is_active, t.max_members, t.created_at
		FROM teams t
		JOIN team_memberships m ON m.team_id = t.id
		WHERE m.user_id = ? AND t.is_active = TRUE
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user teams: %w", err)
	}
	return s.toViews(teams)
}

// GetTeam retrieves an active team by id
func (s *TeamService) GetTeam(teamID int) (*models.TeamView, error) {
	team, err := s.getActiveTeam(teamID)
	if err != nil {
		return nil, err
	}
	return s.toView(team)
}

// UpdateTeam lets the creator edit team settings. Lowering max_members below
// the current member count is allowed; the cap is enforced at join time only.
func (s *TeamService) UpdateTeam(userID, teamID int, req *models.TeamUpdateRequest) (*models.TeamView, error) {
	team, err := s.getActiveTeam(teamID)
	if err != nil {
		return nil, err
	}
	if team.CreatedBy != userID {
		return nil, NotFoundError("team not found")
	}

	if req.Name != nil && *req.Name != team.Name {
		var count int
		if err := s.db.Get(&count, `SELECT COUNT(*) FROM teams WHERE name = ? AND id != ?`, *req.Name, teamID); err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ValidationError("team name already exists")
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.MaxMembers != nil {
		if *req.MaxMembers <= 0 {
			return nil, ValidationError("max_members must be greater than zero")
		}
		team.MaxMembers = *req.MaxMembers
	}

	_, err = s.db.NamedExec(`
		UPDATE teams SET name = :name, description = :description, max_members = :max_members
		WHERE id = :id
	`, team)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return s.toView(team)
}

// DeleteTeam deactivates a team. Only the creator may do this; memberships
// stay in place so the roster is preserved if an admin reactivates it.
func (s *TeamService) DeleteTeam(userID, teamID int) error {
	team, err := s.getActiveTeam(teamID)
	if err != nil {
		return err
	}
	if team.CreatedBy != userID {
		return NotFoundError("team not found")
	}

	_, err = s.db.Exec(`UPDATE teams SET is_active = FALSE WHERE id = ?`, teamID)
	if err != nil {
		return fmt.Errorf("failed to deactivate team: %w", err)
	}
	return nil
}

// JoinTeam adds the user to a team as a member. The capacity check and the
// membership insert run in one transaction so concurrent joins cannot race
// past max_members.
func (s *TeamService) JoinTeam(userID, teamID int) error {
	team, err := s.getActiveTeam(teamID)
	if err != nil {
		return err
	}

	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM team_memberships WHERE user_id = ? AND team_id = ?`, userID, teamID); err != nil {
		return err
	}
	if count > 0 {
		return ConflictError("You are already a member of this team")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO team_memberships (user_id, team_id, role, is_active)
		SELECT ?, ?, 'member', TRUE
		WHERE (SELECT COUNT(*) FROM team_memberships WHERE team_id = ?) < ?
	`, userID, teamID, teamID, team.MaxMembers)
	if err != nil {
		return fmt.Errorf("failed to join team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ConflictError("Team is full")
	}

	return tx.Commit()
}

// LeaveTeam removes the user's membership. The creator cannot leave while
// other members remain. When the last member leaves the team is deactivated;
// the delete and the deactivation are atomic.
func (s *TeamService) LeaveTeam(userID, teamID int) error {
	team, err := s.getActiveTeam(teamID)
	if err != nil {
		return err
	}

	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM team_memberships WHERE user_id = ? AND team_id = ?`, userID, teamID); err != nil {
		return err
	}
	if count == 0 {
		return NotFoundError("Team membership not found")
	}

	memberCount, err := s.MemberCount(teamID)
	if err != nil {
		return err
	}
	if team.CreatedBy == userID && memberCount > 1 {
		return ConflictError("You cannot leave a team you created while other members exist")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM team_memberships WHERE user_id = ? AND team_id = ?`, userID, teamID); err != nil {
		return fmt.Errorf("failed to leave team: %w", err)
	}

	var remaining int
	if err := tx.Get(&remaining, `SELECT COUNT(*) FROM team_memberships WHERE team_id = ?`, teamID); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(`UPDATE teams SET is_active = FALSE WHERE id = ?`, teamID); err != nil {
			return fmt.Errorf("failed to deactivate empty team: %w", err)
		}
	}

	return tx.Commit()
}

// TotalPoints sums the profile points of all current members. Recomputed on
// every read; nothing is cached.
func (s *TeamService) TotalPoints(teamID int) (int, error) {
	var total int
	err := s.db.Get(&total, `
		SELECT COALESCE(SUM(p.points), 0)
		FROM team_memberships m
		JOIN profiles p ON p.user_id = m.user_id
		WHERE m.team_id = ?
	`, teamID)
	return total, err
}

// MemberCount counts the team's current memberships
func (s *TeamService) MemberCount(teamID int) (int, error) {
	var count int
	err := s.db.Get(&count, `SELECT COUNT(*) FROM team_memberships WHERE team_id = ?`, teamID)
	return count, err
}

// Leaderboard ranks active teams by total member points, top 10
func (s *TeamService) Leaderboard() ([]models.TeamLeaderboardEntry, error) {
	entries := []models.TeamLeaderboardEntry{}
	err := s.db.Select(&entries, `
		SELECT t.name AS team_name,
			COALESCE((SELECT SUM(p.points)
				FROM team_memberships m
				JOIN profiles p ON p.user_id = m.user_id
				WHERE m.team_id = t.id), 0) AS total_points,
			(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = t.id) AS member_count
		FROM teams t
		WHERE t.is_active = TRUE
		ORDER BY total_points DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to build team leaderboard: %w", err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *TeamService) getActiveTeam(teamID int) (*models.Team, error) {
	var team models.Team
	err := s.db.Get(&team, `
		SELECT id, name, description, created_by, is_active, max_members, created_at
		FROM teams WHERE id = ? AND is_active = TRUE
	`, teamID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("Team not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

func (s *TeamService) memberships(teamID int) ([]models.TeamMembership, error) {
	memberships := []models.TeamMembership{}
	err := s.db.Select(&memberships, `
		SELECT m.id, m.user_id, m.team_id, u.username, m.joined_at, m.role, m.is_active
		FROM team_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = ?
		ORDER BY m.joined_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

func (s *TeamService) toView(team *models.Team) (*models.TeamView, error) {
	totalPoints, err := s.TotalPoints(team.ID)
	if err != nil {
		return nil, err
	}
	memberships, err := s.memberships(team.ID)
	if err != nil {
		return nil, err
	}
	return &models.TeamView{
		Team:        *team,
		TotalPoints: totalPoints,
		MemberCount: len(memberships),
		Memberships: memberships,
	}, nil
}

func (s *TeamService) toViews(teams []models.Team) ([]models.TeamView, error) {
	views := make([]models.TeamView, 0, len(teams))
	for i := range teams {
		view, err := s.toView(&teams[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
