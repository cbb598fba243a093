package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/repository"
)

func newAchievementService(database *sqlx.DB) *AchievementService {
	return NewAchievementService(repository.NewAchievementRepository(database))
}

func TestAchievementEarnedDateFollowsCompletion(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	achievements := newAchievementService(database)

	achievement, err := achievements.Create(user.ID, AchievementCreateInput{Title: "First Workout"})
	require.NoError(t, err)
	assert.Nil(t, achievement.DateEarned)

	// Completing stamps the date.
	updated, err := achievements.Update(user.ID, achievement.ID, AchievementUpdateInput{Completed: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, updated.DateEarned)
	earned := *updated.DateEarned

	// Completing again keeps the original stamp.
	updated, err = achievements.Update(user.ID, achievement.ID, AchievementUpdateInput{Completed: ptr(true)})
	require.NoError(t, err)
	assert.WithinDuration(t, earned, *updated.DateEarned, time.Second)

	// Un-completing clears it.
	updated, err = achievements.Update(user.ID, achievement.ID, AchievementUpdateInput{Completed: ptr(false)})
	require.NoError(t, err)
	assert.Nil(t, updated.DateEarned)
}

func TestAchievementBornCompletedIsStamped(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	achievements := newAchievementService(database)

	achievement, err := achievements.Create(user.ID, AchievementCreateInput{
		Title:     "Early Bird",
		Completed: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, achievement.DateEarned)
}

func TestAchievementTitleUniquePerUser(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	other := createTestUser(t, database, "casey")
	achievements := newAchievementService(database)

	_, err := achievements.Create(user.ID, AchievementCreateInput{Title: "Streak Week"})
	require.NoError(t, err)

	_, err = achievements.Create(user.ID, AchievementCreateInput{Title: "Streak Week"})
	assert.ErrorIs(t, err, repository.ErrDuplicateAchievement)

	// A different user may reuse the title.
	_, err = achievements.Create(other.ID, AchievementCreateInput{Title: "Streak Week"})
	assert.NoError(t, err)
}

func TestCompletedAchievementListing(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	achievements := newAchievementService(database)

	_, err := achievements.Create(user.ID, AchievementCreateInput{Title: "Pending"})
	require.NoError(t, err)
	_, err = achievements.Create(user.ID, AchievementCreateInput{Title: "Done", Completed: true})
	require.NoError(t, err)

	all, err := achievements.Achievements(user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := achievements.Completed(user.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Done", completed[0].Title)
}

func TestAchievementOwnership(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "owner")
	intruder := createTestUser(t, database, "intruder")
	achievements := newAchievementService(database)

	achievement, err := achievements.Create(owner.ID, AchievementCreateInput{Title: "Secret"})
	require.NoError(t, err)

	_, err = achievements.ByID(intruder.ID, achievement.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = achievements.Delete(intruder.ID, achievement.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
