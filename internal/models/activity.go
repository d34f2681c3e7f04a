package models

import "time"

// ActivityType is a catalog entry describing how an activity scores points
type ActivityType struct {
	ID              int     `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Description     string  `json:"description" db:"description"`
	PointsPerMinute float64 `json:"points_per_minute" db:"points_per_minute"`
	Icon            string  `json:"icon" db:"icon"`
}

// Activity is a single logged workout
type Activity struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ActivityTypeID int       `json:"activity_type_id" db:"activity_type_id"`
	DurationMin    int       `json:"duration_minutes" db:"duration_minutes"`
	Distance       *float64  `json:"distance" db:"distance"` // km
	CaloriesBurned *int      `json:"calories_burned" db:"calories_burned"`
	Notes          string    `json:"notes" db:"notes"`
	LoggedAt       time.Time `json:"date_logged" db:"logged_at"`
	ActivityDate   string    `json:"activity_date" db:"activity_date"` // YYYY-MM-DD
	PointsEarned   int       `json:"points_earned" db:"points_earned"`
}

// ActivityView is an activity with its type expanded for API responses
type ActivityView struct {
	Activity
	ActivityType ActivityType `json:"activity_type"`
}

// ActivityCreateRequest logs a new activity.
// PointsEarned is optional; zero means "compute from duration and type rate".
type ActivityCreateRequest struct {
	ActivityTypeID int      `json:"activity_type_id" validate:"required"`
	DurationMin    int      `json:"duration_minutes" validate:"required,gt=0"`
	Distance       *float64 `json:"distance"`
	CaloriesBurned *int     `json:"calories_burned"`
	Notes          string   `json:"notes"`
	ActivityDate   string   `json:"activity_date" validate:"required"`
	PointsEarned   int      `json:"points_earned"`
}

// ActivityUpdateRequest edits an existing activity; nil fields are left unchanged
type ActivityUpdateRequest struct {
	ActivityTypeID *int     `json:"activity_type_id"`
	DurationMin    *int     `json:"duration_minutes"`
	Distance       *float64 `json:"distance"`
	CaloriesBurned *int     `json:"calories_burned"`
	Notes          *string  `json:"notes"`
	ActivityDate   *string  `json:"activity_date"`
}

// Achievement is an earned badge. (user, name) is unique.
type Achievement struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	BadgeIcon      string    `json:"badge_icon" db:"badge_icon"`
	PointsRequired int       `json:"points_required" db:"points_required"`
	EarnedAt       time.Time `json:"earned_date" db:"earned_at"`
}

// UserStats are the caller's aggregate fitness numbers.
// All sums default to zero when no activities exist.
type UserStats struct {
	TotalActivities   int     `json:"total_activities" db:"total_activities"`
	TotalPoints       int     `json:"total_points" db:"total_points"`
	TotalDuration     int     `json:"total_duration" db:"total_duration"`
	TotalDistance     float64 `json:"total_distance" db:"total_distance"`
	TotalCalories     int     `json:"total_calories" db:"total_calories"`
	AchievementsCount int     `json:"achievements_count" db:"achievements_count"`
}

// UserLeaderboardEntry is one row of the user leaderboard
type UserLeaderboardEntry struct {
	Rank            int    `json:"rank"`
	Username        string `json:"username" db:"username"`
	Points          int    `json:"points" db:"points"`
	ActivitiesCount int    `json:"activities_count" db:"activities_count"`
}
