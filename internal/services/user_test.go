package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-web/internal/models"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register(&models.RegisterRequest{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "secret123",
		FitnessGoal: "run a marathon",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.Password, "hash must not leak into the returned struct after registration")

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Points)
	assert.Equal(t, "beginner", profile.FitnessLevel)
	assert.Empty(t, profile.PreferredActivities)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createUser(t, db, "alice")

	_, err := svc.Register(&models.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Register(&models.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.ErrorAs(t, err, &validationErr)
}

func TestRegisterRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register(&models.RegisterRequest{Username: "alice"})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createUser(t, db, "alice")

	user, err := svc.Authenticate(&models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate(&models.LoginRequest{Username: "alice", Password: "wrong"})
	var authErr AuthError
	require.ErrorAs(t, err, &authErr)

	_, err = svc.Authenticate(&models.LoginRequest{Username: "nobody", Password: "secret123"})
	require.ErrorAs(t, err, &authErr)
}

func TestUpdateUserPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "alice")

	goal := "swim weekly"
	updated, err := svc.UpdateUser(user.ID, &models.UserUpdateRequest{FitnessGoal: &goal})
	require.NoError(t, err)
	assert.Equal(t, "swim weekly", updated.FitnessGoal)
	assert.Equal(t, "alice@example.com", updated.Email, "unspecified fields stay unchanged")
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	taken := "alice@example.com"
	_, err := svc.UpdateUser(bob.ID, &models.UserUpdateRequest{Email: &taken})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "alice")

	level := "advanced"
	bio := "early riser"
	tags := models.StringList{"running", "yoga"}
	profile, err := svc.UpdateProfile(user.ID, &models.ProfileUpdateRequest{
		Bio:                 &bio,
		FitnessLevel:        &level,
		PreferredActivities: &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "advanced", profile.FitnessLevel)
	assert.Equal(t, models.StringList{"running", "yoga"}, profile.PreferredActivities)

	reloaded, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "early riser", reloaded.Bio)
	assert.Equal(t, models.StringList{"running", "yoga"}, reloaded.PreferredActivities)
}

func TestUpdateProfileValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "alice")

	var validationErr ValidationError

	bad := "expert"
	_, err := svc.UpdateProfile(user.ID, &models.ProfileUpdateRequest{FitnessLevel: &bad})
	require.ErrorAs(t, err, &validationErr)

	negative := -5
	_, err = svc.UpdateProfile(user.ID, &models.ProfileUpdateRequest{Points: &negative})
	require.ErrorAs(t, err, &validationErr)
}
