package models

import "time"

// Team is a group competing together. Creators do not join automatically.
type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   int       `json:"created_by" db:"created_by"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	MaxMembers  int       `json:"max_members" db:"max_members"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TeamMembership links a user to a team with a role
type TeamMembership struct {
	ID       int       `json:"-" db:"id"`
	UserID   int       `json:"-" db:"user_id"`
	TeamID   int       `json:"-" db:"team_id"`
	Username string    `json:"user" db:"username"`
	JoinedAt time.Time `json:"joined_date" db:"joined_at"`
	Role     string    `json:"role" db:"role"` // member, captain, admin
	IsActive bool      `json:"is_active" db:"is_active"`
}

// TeamView is a team with its on-demand aggregates and member list
type TeamView struct {
	Team
	TotalPoints int              `json:"total_points"`
	MemberCount int              `json:"member_count"`
	Memberships []TeamMembership `json:"memberships"`
}

// TeamCreateRequest creates a new team
type TeamCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members" validate:"gt=0"`
}

// TeamUpdateRequest edits a team; nil fields are left unchanged
type TeamUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxMembers  *int    `json:"max_members"`
}

// TeamLeaderboardEntry is one ranked row of the team leaderboard
type TeamLeaderboardEntry struct {
	Rank        int    `json:"rank"`
	TeamName    string `json:"team_name" db:"team_name"`
	TotalPoints int    `json:"total_points" db:"total_points"`
	MemberCount int    `json:"member_count" db:"member_count"`
}
