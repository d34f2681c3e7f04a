package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-web/internal/database"
	"github.com/octofit/octofit-web/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func createUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	svc := NewUserService(db)
	user, err := svc.Register(&models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	return user
}

func setPoints(t *testing.T, db *database.DB, userID, points int) {
	t.Helper()

	_, err := db.Exec(`UPDATE profiles SET points = ? WHERE user_id = ?`, points, userID)
	require.NoError(t, err)
}

func activityTypeID(t *testing.T, db *database.DB, name string) int {
	t.Helper()

	var id int
	require.NoError(t, db.Get(&id, `SELECT id FROM activity_types WHERE name = ?`, name))
	return id
}
