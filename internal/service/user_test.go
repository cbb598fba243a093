package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/repository"
)

func TestUserUpdateRecalculatesBMI(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	users := NewUserService(repository.NewUserRepository(database))

	updated, err := users.Update(user.ID, UserUpdateInput{
		Height:        ptr(170.0),
		CurrentWeight: ptr(65.0),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BMI)
	assert.InDelta(t, 22.49, *updated.BMI, 0.01)

	// Partial update leaves untouched fields alone.
	updated, err = users.Update(user.ID, UserUpdateInput{Name: ptr("Jordan Q")})
	require.NoError(t, err)
	assert.Equal(t, "Jordan Q", updated.Name)
	assert.Equal(t, 170.0, *updated.Height)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	database := newTestDB(t)
	jordan := createTestUser(t, database, "jordan")
	createTestUser(t, database, "casey")
	users := NewUserService(repository.NewUserRepository(database))

	_, err := users.Update(jordan.ID, UserUpdateInput{Email: ptr("casey@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own email is fine.
	_, err = users.Update(jordan.ID, UserUpdateInput{Email: ptr("JORDAN@example.com")})
	assert.NoError(t, err)
}

func TestUserDeleteCascades(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	users := NewUserService(repository.NewUserRepository(database))
	meals := newMealService(database)

	_, err := meals.Create(user.ID, MealCreateInput{Date: "2026-03-01", Type: "lunch"})
	require.NoError(t, err)

	err = users.Delete(user.ID)
	require.NoError(t, err)

	_, err = users.ByID(user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	listed, err := meals.Meals(user.ID, repository.MealFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed, "meals go with the user")
}

func TestUserList(t *testing.T) {
	database := newTestDB(t)
	createTestUser(t, database, "jordan")
	createTestUser(t, database, "casey")
	users := NewUserService(repository.NewUserRepository(database))

	all, err := users.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
