package services

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

// EventPublisher receives domain events for the live feed. May be nil.
type EventPublisher interface {
	Publish(event interface{})
}

type ActivityService struct {
	db     *database.DB
	events EventPublisher
}

func NewActivityService(db *database.DB, events EventPublisher) *ActivityService {
	return &ActivityService{db: db, events: events}
}

// ListActivityTypes returns the full activity-type catalog
func (s *ActivityService) ListActivityTypes() ([]models.ActivityType, error) {
	types := []models.ActivityType{}
	err := s.db.Select(&types, `SELECT id, name, description, points_per_minute, icon
		FROM activity_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types: %w", err)
	}
	return types, nil
}

// GetActivityType retrieves one catalog entry
func (s *ActivityService) GetActivityType(id int) (*models.ActivityType, error) {
	var at models.ActivityType
	err := s.db.Get(&at, `SELECT id, name, description, points_per_minute, icon
		FROM activity_types WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ValidationError("activity type not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get activity type: %w", err)
	}
	return &at, nil
}

// LogActivity records a workout for the user. When the request carries a zero
// points_earned the points are computed as floor(duration * points_per_minute);
// a non-zero value supplied by the caller is stored as-is and never recomputed.
func (s *ActivityService) LogActivity(userID int, req *models.ActivityCreateRequest) (*models.ActivityView, error) {
	if req.DurationMin <= 0 {
		return nil, ValidationError("duration_minutes must be greater than zero")
	}
	if req.Distance != nil && *req.Distance < 0 {
		return nil, ValidationError("distance cannot be negative")
	}
	if req.CaloriesBurned != nil && *req.CaloriesBurned < 0 {
		return nil, ValidationError("calories_burned cannot be negative")
	}
	if req.ActivityDate == "" {
		return nil, ValidationError("activity_date is required")
	}

	activityType, err := s.GetActivityType(req.ActivityTypeID)
	if err != nil {
		return nil, err
	}

	points := req.PointsEarned
	if points == 0 {
		points = int(math.Floor(float64(req.DurationMin) * activityType.PointsPerMinute))
	}

	activity := &models.Activity{
		UserID:         userID,
		ActivityTypeID: req.ActivityTypeID,
		DurationMin:    req.DurationMin,
		Distance:       req.Distance,
		CaloriesBurned: req.CaloriesBurned,
		Notes:          req.Notes,
		LoggedAt:       time.Now(),
		ActivityDate:   req.ActivityDate,
		PointsEarned:   points,
	}

	result, err := s.db.NamedExec(`
		INSERT INTO activities (user_id, activity_type_id, duration_minutes, distance,
			calories_burned, notes, logged_at, activity_date, points_earned)
		VALUES (:user_id, :activity_type_id, :duration_minutes, :distance,
			:calories_burned, :notes, :logged_at, :activity_date, :points_earned)
	`, activity)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity ID: %w", err)
	}
	activity.ID = int(id)

	view := &models.ActivityView{Activity: *activity, ActivityType: *activityType}

	if s.events != nil {
		s.events.Publish(map[string]interface{}{
			"event":         "activity_logged",
			"user_id":       userID,
			"activity_type": activityType.Name,
			"points_earned": points,
		})
	}

	return view, nil
}

// ListActivities returns the caller's activities, newest activity date first,
// ties broken by the time they were logged.
func (s *ActivityService) ListActivities(userID int) ([]models.ActivityView, error) {
	activities := []models.Activity{}
	err := s.db.Select(&activities, `
		SELECT id, user_id, activity_type_id, duration_minutes, distance,
			calories_burned, notes, logged_at, activity_date, points_earned
		FROM activities
		WHERE user_id = ?
		ORDER BY activity_date DESC, logged_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return s.expandTypes(activities)
}

// GetActivity retrieves one of the caller's own activities
func (s *ActivityService) GetActivity(userID, activityID int) (*models.ActivityView, error) {
	var activity models.Activity
	err := s.db.Get(&activity, `
		SELECT id, user_id, activity_type_id, duration_minutes, distance,
			calories_burned, notes, logged_at, activity_date, points_earned
		FROM activities WHERE id = ? AND user_id = ?
	`, activityID, userID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("activity not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	activityType, err := s.GetActivityType(activity.ActivityTypeID)
	if err != nil {
		return nil, err
	}

	return &models.ActivityView{Activity: activity, ActivityType: *activityType}, nil
}

// UpdateActivity applies a partial update to one of the caller's activities.
// Points are not recomputed when the type or duration changes.
func (s *ActivityService) UpdateActivity(userID, activityID int, req *models.ActivityUpdateRequest) (*models.ActivityView, error) {
	view, err := s.GetActivity(userID, activityID)
	if err != nil {
		return nil, err
	}
	activity := view.Activity

	if req.ActivityTypeID != nil {
		if _, err := s.GetActivityType(*req.ActivityTypeID); err != nil {
			return nil, err
		}
		activity.ActivityTypeID = *req.ActivityTypeID
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			return nil, ValidationError("duration_minutes must be greater than zero")
		}
		activity.DurationMin = *req.DurationMin
	}
	if req.Distance != nil {
		if *req.Distance < 0 {
			return nil, ValidationError("distance cannot be negative")
		}
		activity.Distance = req.Distance
	}
	if req.CaloriesBurned != nil {
		if *req.CaloriesBurned < 0 {
			return nil, ValidationError("calories_burned cannot be negative")
		}
		activity.CaloriesBurned = req.CaloriesBurned
	}
	if req.Notes != nil {
		activity.Notes = *req.Notes
	}
	if req.ActivityDate != nil {
		activity.ActivityDate = *req.ActivityDate
	}

	_, err = s.db.NamedExec(`
		UPDATE activities SET activity_type_id = :activity_type_id,
			duration_minutes = :duration_minutes, distance = :distance,
			calories_burned = :calories_burned, notes = :notes,
			activity_date = :activity_date
		WHERE id = :id AND user_id = :user_id
	`, activity)
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	activityType, err := s.GetActivityType(activity.ActivityTypeID)
	if err != nil {
		return nil, err
	}

	return &models.ActivityView{Activity: activity, ActivityType: *activityType}, nil
}

// DeleteActivity removes one of the caller's activities
func (s *ActivityService) DeleteActivity(userID, activityID int) error {
	result, err := s.db.Exec(`DELETE FROM activities WHERE id = ? AND user_id = ?`, activityID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError("activity not found")
	}
	return nil
}

func (s *ActivityService) expandTypes(activities []models.Activity) ([]models.ActivityView, error) {
	types, err := s.ListActivityTypes()
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.ActivityType, len(types))
	for _, at := range types {
		byID[at.ID] = at
	}

	views := make([]models.ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, models.ActivityView{Activity: a, ActivityType: byID[a.ActivityTypeID]})
	}
	return views, nil
}
