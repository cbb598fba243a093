package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
)

func newWorkoutService(database *sqlx.DB) *WorkoutService {
	return NewWorkoutService(
		database,
		repository.NewWorkoutRepository(database),
		repository.NewExerciseRepository(database),
		repository.NewUserStatRepository(database),
	)
}

func userStats(t *testing.T, database *sqlx.DB, userID string) *model.UserStat {
	t.Helper()
	stat, err := repository.NewUserStatRepository(database).ByUserID(userID)
	require.NoError(t, err)
	return stat
}

func TestCompletedWorkoutCountsTowardStats(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	_, err := workouts.Create(user.ID, WorkoutCreateInput{
		Name:           "morning run",
		Date:           "2026-03-01",
		Duration:       ptr(45),
		CaloriesBurned: ptr(300.0),
		Completed:      true,
		Exercises:      []ExerciseInput{{Name: "run", Completed: true}},
	})
	require.NoError(t, err)

	stat := userStats(t, database, user.ID)
	assert.Equal(t, 1, stat.WeeklyWorkouts)
	assert.Equal(t, 1, stat.MonthlyWorkouts)
	assert.Equal(t, 45, stat.WeeklyDuration)
	assert.Equal(t, 300.0, stat.WeeklyCalories)
}

func TestCompletionToggleMovesStatsBothWays(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	workout, err := workouts.Create(user.ID, WorkoutCreateInput{
		Name:           "lifting",
		Date:           "2026-03-01",
		Duration:       ptr(60),
		CaloriesBurned: ptr(400.0),
	})
	require.NoError(t, err)

	stat := userStats(t, database, user.ID)
	assert.Zero(t, stat.WeeklyWorkouts, "incomplete workout does not count")

	// false -> true adds.
	_, err = workouts.Update(user.ID, workout.ID, WorkoutUpdateInput{Completed: ptr(true)})
	require.NoError(t, err)

	stat = userStats(t, database, user.ID)
	assert.Equal(t, 1, stat.WeeklyWorkouts)
	assert.Equal(t, 60, stat.WeeklyDuration)
	assert.Equal(t, 400.0, stat.WeeklyCalories)

	// true -> false subtracts it back out.
	_, err = workouts.Update(user.ID, workout.ID, WorkoutUpdateInput{Completed: ptr(false)})
	require.NoError(t, err)

	stat = userStats(t, database, user.ID)
	assert.Zero(t, stat.WeeklyWorkouts)
	assert.Zero(t, stat.WeeklyDuration)
	assert.Zero(t, stat.WeeklyCalories)
}

func TestEditingCompletedWorkoutSwapsContribution(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	workout, err := workouts.Create(user.ID, WorkoutCreateInput{
		Name:           "ride",
		Date:           "2026-03-01",
		Duration:       ptr(30),
		CaloriesBurned: ptr(200.0),
		Completed:      true,
	})
	require.NoError(t, err)

	_, err = workouts.Update(user.ID, workout.ID, WorkoutUpdateInput{
		Duration:       ptr(90),
		CaloriesBurned: ptr(550.0),
	})
	require.NoError(t, err)

	stat := userStats(t, database, user.ID)
	assert.Equal(t, 1, stat.WeeklyWorkouts, "still one workout")
	assert.Equal(t, 90, stat.WeeklyDuration)
	assert.Equal(t, 550.0, stat.WeeklyCalories)
}

func TestDeletingCompletedWorkoutSubtractsStats(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	workout, err := workouts.Create(user.ID, WorkoutCreateInput{
		Name:           "swim",
		Date:           "2026-03-01",
		Duration:       ptr(40),
		CaloriesBurned: ptr(350.0),
		Completed:      true,
	})
	require.NoError(t, err)

	err = workouts.Delete(user.ID, workout.ID)
	require.NoError(t, err)

	stat := userStats(t, database, user.ID)
	assert.Zero(t, stat.WeeklyWorkouts)
	assert.Zero(t, stat.WeeklyDuration)
	assert.Zero(t, stat.WeeklyCalories)
}

func TestStatsNeverGoNegative(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	// Complete with no duration, then un-complete after giving it one: the
	// subtraction would overshoot, but the counters floor at zero.
	workout, err := workouts.Create(user.ID, WorkoutCreateInput{
		Name:      "mystery",
		Date:      "2026-03-01",
		Completed: true,
	})
	require.NoError(t, err)

	err = workouts.Delete(user.ID, workout.ID)
	require.NoError(t, err)

	err = workouts.Delete(user.ID, workout.ID)
	assert.ErrorIs(t, err, repository.ErrWorkoutNotFound)

	stat := userStats(t, database, user.ID)
	assert.GreaterOrEqual(t, stat.WeeklyWorkouts, 0)
	assert.GreaterOrEqual(t, stat.WeeklyDuration, 0)
}

func TestExerciseCRUD(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)

	workout, err := workouts.Create(user.ID, WorkoutCreateInput{Name: "gym", Date: "2026-03-01"})
	require.NoError(t, err)

	exercise, err := workouts.AddExercise(user.ID, workout.ID, ExerciseInput{
		Name: "squat",
		Sets: ptr(3),
		Reps: ptr(8),
	})
	require.NoError(t, err)

	updated, err := workouts.UpdateExercise(user.ID, exercise.ID, ExerciseUpdateInput{
		Reps:      ptr(10),
		Completed: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, *updated.Reps)
	assert.True(t, updated.Completed)

	err = workouts.DeleteExercise(user.ID, exercise.ID)
	require.NoError(t, err)

	got, err := workouts.ByID(user.ID, workout.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Exercises)
}

func TestWorkoutFromTemplate(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	workouts := newWorkoutService(database)
	templates := NewTemplateService(repository.NewWorkoutTemplateRepository(database), workouts)

	template, err := templates.Create(TemplateCreateInput{
		Name:              "Full Body Blast",
		Difficulty:        ptr("intermediate"),
		EstimatedDuration: ptr(50),
	})
	require.NoError(t, err)

	workout, err := templates.StartWorkout(user.ID, template.ID)
	require.NoError(t, err)

	assert.Equal(t, "Full Body Blast", workout.Name)
	assert.Equal(t, 50, *workout.Duration)
	assert.False(t, workout.Completed, "template workouts start incomplete")

	stat := userStats(t, database, user.ID)
	assert.Zero(t, stat.WeeklyWorkouts)
}

func TestWorkoutOwnership(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "owner")
	intruder := createTestUser(t, database, "intruder")
	workouts := newWorkoutService(database)

	workout, err := workouts.Create(owner.ID, WorkoutCreateInput{Name: "gym", Date: "2026-03-01"})
	require.NoError(t, err)

	_, err = workouts.ByID(intruder.ID, workout.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = workouts.Update(intruder.ID, workout.ID, WorkoutUpdateInput{Completed: ptr(true)})
	assert.ErrorIs(t, err, ErrForbidden)
}
