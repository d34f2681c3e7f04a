package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/octofit-web/internal/models"
)

func TestCreateTeamNoAutoJoin(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 2})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, team.CreatedBy)
	assert.Equal(t, 0, team.MemberCount, "creator is not added automatically")
	assert.Empty(t, team.Memberships)
}

func TestCreateTeamValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")

	var validationErr ValidationError

	_, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "", MaxMembers: 5})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 0})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)
	_, err = svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.ErrorAs(t, err, &validationErr, "team names are unique")
}

func TestJoinTeamCapacityScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 2})
	require.NoError(t, err)

	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))
	count, err := svc.MemberCount(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.JoinTeam(bob.ID, team.ID))
	count, err = svc.MemberCount(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var conflictErr ConflictError
	err = svc.JoinTeam(carol.ID, team.ID)
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Team is full", conflictErr.Error())
}

func TestJoinTeamRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)

	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))

	var conflictErr ConflictError
	err = svc.JoinTeam(alice.ID, team.ID)
	require.ErrorAs(t, err, &conflictErr)

	count, err := svc.MemberCount(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "no duplicate membership row")
}

func TestJoinTeamMissingOrInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")

	var notFoundErr NotFoundError
	err := svc.JoinTeam(alice.ID, 9999)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestLeaveTeamCreatorRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)
	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))
	require.NoError(t, svc.JoinTeam(bob.ID, team.ID))

	// Creator cannot abandon the team while others remain.
	var conflictErr ConflictError
	err = svc.LeaveTeam(alice.ID, team.ID)
	require.ErrorAs(t, err, &conflictErr)

	// A regular member leaving does not deactivate the team.
	require.NoError(t, svc.LeaveTeam(bob.ID, team.ID))
	view, err := svc.GetTeam(team.ID)
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.Equal(t, 1, view.MemberCount)

	// Now the creator is the sole member and may leave; the team deactivates.
	require.NoError(t, svc.LeaveTeam(alice.ID, team.ID))

	var notFoundErr NotFoundError
	_, err = svc.GetTeam(team.ID)
	require.ErrorAs(t, err, &notFoundErr)

	err = svc.JoinTeam(bob.ID, team.ID)
	require.ErrorAs(t, err, &notFoundErr, "joining a deactivated team fails")
}

func TestLeaveTeamWithoutMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)
	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))

	var notFoundErr NotFoundError
	err = svc.LeaveTeam(bob.ID, team.ID)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestTotalPointsSumsMemberProfiles(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	setPoints(t, db, alice.ID, 120)
	setPoints(t, db, bob.ID, 80)

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)
	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))
	require.NoError(t, svc.JoinTeam(bob.ID, team.ID))

	total, err := svc.TotalPoints(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, total)

	// Recomputed on every read: a points change shows up immediately.
	setPoints(t, db, bob.ID, 100)
	total, err = svc.TotalPoints(team.ID)
	require.NoError(t, err)
	assert.Equal(t, 220, total)
}

func TestTeamLeaderboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)

	// Twelve teams of one member each, points 10, 20, ... 120.
	for i := 1; i <= 12; i++ {
		user := createUser(t, db, userName(i))
		setPoints(t, db, user.ID, i*10)

		team, err := svc.CreateTeam(user.ID, &models.TeamCreateRequest{Name: teamName(i), MaxMembers: 5})
		require.NoError(t, err)
		require.NoError(t, svc.JoinTeam(user.ID, team.ID))
	}

	entries, err := svc.Leaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 10, "leaderboard is capped at ten entries")

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 120, entries[0].TotalPoints)
	assert.Equal(t, teamName(12), entries[0].TeamName)
	assert.Equal(t, 1, entries[0].MemberCount)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].TotalPoints, entries[i].TotalPoints)
		assert.Equal(t, i+1, entries[i].Rank)
	}
}

func TestUpdateTeamAllowsLoweringMaxMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)
	require.NoError(t, svc.JoinTeam(alice.ID, team.ID))
	require.NoError(t, svc.JoinTeam(bob.ID, team.ID))

	// Capacity is enforced at join time only; existing members stay.
	lower := 1
	updated, err := svc.UpdateTeam(alice.ID, team.ID, &models.TeamUpdateRequest{MaxMembers: &lower})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.MaxMembers)
	assert.Equal(t, 2, updated.MemberCount)
}

func TestUpdateTeamOnlyCreator(t *testing.T) {
	db := newTestDB(t)
	svc := NewTeamService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := svc.CreateTeam(alice.ID, &models.TeamCreateRequest{Name: "Runners", MaxMembers: 5})
	require.NoError(t, err)

	name := "Hijacked"
	var notFoundErr NotFoundError
	_, err = svc.UpdateTeam(bob.ID, team.ID, &models.TeamUpdateRequest{Name: &name})
	require.ErrorAs(t, err, &notFoundErr)

	err = svc.DeleteTeam(bob.ID, team.ID)
	require.ErrorAs(t, err, &notFoundErr)
}

func userName(i int) string {
	return string(rune('a'+i-1)) + "user"
}

func teamName(i int) string {
	return "team-" + string(rune('a'+i-1))
}
