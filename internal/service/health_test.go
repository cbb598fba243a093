package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/validation"
)

func newHealthService(database *sqlx.DB) *HealthService {
	return NewHealthService(database, repository.NewHealthMetricRepository(database), repository.NewUserRepository(database))
}

func loadUser(t *testing.T, database *sqlx.DB, id string) *model.User {
	t.Helper()
	user, err := repository.NewUserRepository(database).ByID(id)
	require.NoError(t, err)
	return user
}

func TestMetricWeightMirrorsOntoUser(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	// Give the user a height so the mirror can compute BMI.
	users := NewUserService(repository.NewUserRepository(database))
	_, err := users.Update(user.ID, UserUpdateInput{Height: ptr(180.0)})
	require.NoError(t, err)

	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Weight: ptr(72.0)})
	require.NoError(t, err)

	got := loadUser(t, database, user.ID)
	require.NotNil(t, got.CurrentWeight)
	assert.Equal(t, 72.0, *got.CurrentWeight)
	require.NotNil(t, got.BMI)
	assert.InDelta(t, 22.22, *got.BMI, 0.01)

	// A later-dated metric takes over the mirror.
	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-03-05", Weight: ptr(70.0)})
	require.NoError(t, err)

	got = loadUser(t, database, user.ID)
	assert.Equal(t, 70.0, *got.CurrentWeight)
	assert.InDelta(t, 21.60, *got.BMI, 0.01)

	// An earlier-dated metric does not.
	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-02-20", Weight: ptr(75.0)})
	require.NoError(t, err)

	got = loadUser(t, database, user.ID)
	assert.Equal(t, 70.0, *got.CurrentWeight)
}

func TestDeletingLatestWeightFallsBack(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	_, err := health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Weight: ptr(72.0)})
	require.NoError(t, err)

	latest, err := health.Create(user.ID, MetricCreateInput{Date: "2026-03-05", Weight: ptr(70.0)})
	require.NoError(t, err)

	err = health.Delete(user.ID, latest.ID)
	require.NoError(t, err)

	got := loadUser(t, database, user.ID)
	require.NotNil(t, got.CurrentWeight)
	assert.Equal(t, 72.0, *got.CurrentWeight, "mirror falls back to the previous weighted entry")
}

func TestMetricDateConflict(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	_, err := health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Steps: ptr(8000)})
	require.NoError(t, err)

	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Steps: ptr(9000)})
	assert.ErrorIs(t, err, repository.ErrMetricDateConflict)

	// Another user may use the same date.
	other := createTestUser(t, database, "casey")
	_, err = health.Create(other.ID, MetricCreateInput{Date: "2026-03-01", Steps: ptr(4000)})
	assert.NoError(t, err)
}

func TestMetricUpdateCanMoveMirror(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	metric, err := health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Weight: ptr(72.0)})
	require.NoError(t, err)

	_, err = health.Update(user.ID, metric.ID, MetricUpdateInput{Weight: ptr(69.0)})
	require.NoError(t, err)

	got := loadUser(t, database, user.ID)
	assert.Equal(t, 69.0, *got.CurrentWeight)
}

func TestLatestMetric(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	_, err := health.Latest(user.ID)
	assert.ErrorIs(t, err, repository.ErrMetricNotFound)

	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-03-01", Steps: ptr(5000)})
	require.NoError(t, err)
	_, err = health.Create(user.ID, MetricCreateInput{Date: "2026-03-04", Steps: ptr(9000)})
	require.NoError(t, err)

	latest, err := health.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", latest.Date)
}

func TestStatsWindow(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	today := time.Now().UTC()
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(validation.DateLayout) }

	for _, m := range []MetricCreateInput{
		{Date: day(-2), Weight: ptr(72.0), Steps: ptr(6000), SleepDuration: ptr(7.0)},
		{Date: day(-1), Weight: ptr(71.0), Steps: ptr(9000), SleepDuration: ptr(8.0)},
		{Date: day(-10), Weight: ptr(80.0), Steps: ptr(100)}, // outside the window
	} {
		_, err := health.Create(user.ID, m)
		require.NoError(t, err)
	}

	stats, err := health.Stats(user.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, "7_days", stats.Period)

	require.NotNil(t, stats.Weight.Current)
	assert.Equal(t, 71.0, *stats.Weight.Current)
	assert.Equal(t, -1.0, *stats.Weight.Change)
	assert.Equal(t, 71.5, *stats.Weight.Average)
	assert.Equal(t, 71.0, *stats.Weight.Min)
	assert.Equal(t, 72.0, *stats.Weight.Max)
	assert.Equal(t, "down", stats.Weight.Trend)

	assert.Equal(t, 15000, stats.Steps.Total)
	assert.Equal(t, 9000, *stats.Steps.Max)
	assert.Equal(t, 7500.0, *stats.Steps.Average)
	assert.Equal(t, "up", stats.Steps.Trend)

	assert.Equal(t, 7.5, *stats.Sleep.Average)
	assert.Equal(t, "up", stats.Sleep.Trend)
}

func TestStatsEmptyWindow(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	health := newHealthService(database)

	stats, err := health.Stats(user.ID, 7)
	require.NoError(t, err)

	assert.Nil(t, stats.Weight.Current)
	assert.Equal(t, "stable", stats.Weight.Trend)
	assert.Zero(t, stats.Steps.Total)
}

func TestMetricOwnership(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "owner")
	intruder := createTestUser(t, database, "intruder")
	health := newHealthService(database)

	metric, err := health.Create(owner.ID, MetricCreateInput{Date: "2026-03-01", Steps: ptr(100)})
	require.NoError(t, err)

	_, err = health.ByID(intruder.ID, metric.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = health.Delete(intruder.ID, metric.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
