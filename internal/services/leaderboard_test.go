package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-web/internal/models"
)

func TestStatsZeroActivities(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	svc := NewLeaderboardService(db)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalActivities)
	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 0, stats.TotalDuration)
	assert.Equal(t, 0.0, stats.TotalDistance)
	assert.Equal(t, 0, stats.TotalCalories)
	assert.Equal(t, 0, stats.AchievementsCount)
}

func TestStatsAggregates(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	setPoints(t, db, user.ID, 150)

	activities := NewActivityService(db, nil)
	running := activityTypeID(t, db, "Running")

	distance1, distance2 := 5.5, 3.25
	calories := 300
	_, err := activities.LogActivity(user.ID, &models.ActivityCreateRequest{
		ActivityTypeID: running,
		DurationMin:    30,
		Distance:       &distance1,
		CaloriesBurned: &calories,
		ActivityDate:   "2026-08-29",
	})
	require.NoError(t, err)
	_, err = activities.LogActivity(user.ID, &models.ActivityCreateRequest{
		ActivityTypeID: running,
		DurationMin:    20,
		Distance:       &distance2,
		ActivityDate:   "2026-08-30",
	})
	require.NoError(t, err)

	achievements := NewAchievementService(db)
	_, err = achievements.Grant(user.ID, "Early Bird", "Log an activity before 7am", "sunrise", 0)
	require.NoError(t, err)

	svc := NewLeaderboardService(db)
	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, 150, stats.TotalPoints)
	assert.Equal(t, 50, stats.TotalDuration)
	assert.InDelta(t, 8.75, stats.TotalDistance, 1e-9)
	assert.Equal(t, 300, stats.TotalCalories)
	assert.Equal(t, 1, stats.AchievementsCount)
}

func TestUserLeaderboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(db)
	activities := NewActivityService(db, nil)
	running := activityTypeID(t, db, "Running")

	for i := 1; i <= 12; i++ {
		user := createUser(t, db, userName(i))
		setPoints(t, db, user.ID, i*10)
	}

	// The top user also logs two activities for the annotation.
	var topID int
	require.NoError(t, db.Get(&topID, `SELECT id FROM users WHERE username = ?`, userName(12)))
	for i := 0; i < 2; i++ {
		_, err := activities.LogActivity(topID, &models.ActivityCreateRequest{
			ActivityTypeID: running,
			DurationMin:    10,
			ActivityDate:   "2026-08-30",
		})
		require.NoError(t, err)
	}

	entries, err := svc.UserLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 10)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, userName(12), entries[0].Username)
	assert.Equal(t, 120, entries[0].Points)
	assert.Equal(t, 2, entries[0].ActivitiesCount)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Points, entries[i].Points)
	}
}

func TestAchievementsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	svc := NewAchievementService(db)

	_, err := svc.Grant(alice.ID, "Early Bird", "Log an activity before 7am", "sunrise", 0)
	require.NoError(t, err)

	list, err := svc.ListAchievements(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.ListAchievements(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Early Bird", list[0].Name)
}

func TestGrantDuplicateAchievement(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	svc := NewAchievementService(db)

	_, err := svc.Grant(alice.ID, "Early Bird", "", "", 0)
	require.NoError(t, err)

	var conflictErr ConflictError
	_, err = svc.Grant(alice.ID, "Early Bird", "", "", 0)
	require.ErrorAs(t, err, &conflictErr)
}
