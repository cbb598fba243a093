package service

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/db"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
)

const testJWTSecret = "test-secret"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close() })

	return database
}

func newAuthService(database *sqlx.DB) *AuthService {
	return NewAuthService(
		database,
		repository.NewUserRepository(database),
		repository.NewUserStatRepository(database),
		testJWTSecret,
		time.Hour,
	)
}

// createTestUser registers a user through the real flow so the stats row
// exists too.
func createTestUser(t *testing.T, database *sqlx.DB, username string) *model.User {
	t.Helper()

	user, err := newAuthService(database).Register(RegisterInput{
		Username: username,
		Password: "correct-horse",
		Name:     "Test User",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)

	return user
}

func ptr[T any](v T) *T {
	return &v
}
