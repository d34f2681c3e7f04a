package models

// Challenge is a competition between teams over a date window
type Challenge struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Description   string `json:"description" db:"description"`
	StartDate     string `json:"start_date" db:"start_date"` // YYYY-MM-DD
	EndDate       string `json:"end_date" db:"end_date"`
	ChallengeType string `json:"challenge_type" db:"challenge_type"` // points, duration, activities, distance
	TargetValue   int    `json:"target_value" db:"target_value"`
	CreatedBy     int    `json:"created_by" db:"created_by"`
	IsActive      bool   `json:"is_active" db:"is_active"`
}

// ChallengeView is a challenge with its participating teams expanded
type ChallengeView struct {
	Challenge
	ParticipatingTeams []Team `json:"participating_teams"`
}

// ChallengeCreateRequest creates a challenge and attaches teams by id.
// Team ids are recorded as given; missing teams are not rejected.
type ChallengeCreateRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	ChallengeType string `json:"challenge_type"`
	TargetValue   int    `json:"target_value" validate:"gt=0"`
	TeamIDs       []int  `json:"participating_team_ids"`
}

// ChallengeUpdateRequest edits a challenge; nil fields are left unchanged
type ChallengeUpdateRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	ChallengeType *string `json:"challenge_type"`
	TargetValue   *int    `json:"target_value"`
	IsActive      *bool   `json:"is_active"`
}
