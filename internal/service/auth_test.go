package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	user, err := auth.Register(RegisterInput{
		Username:      "jordan",
		Password:      "hunter2hunter2",
		Name:          "Jordan",
		Email:         "Jordan@Example.com",
		Height:        ptr(180.0),
		CurrentWeight: ptr(72.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "jordan@example.com", user.Email, "email is normalized")
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash, "password is not stored in the clear")
	require.NotNil(t, user.BMI)
	assert.InDelta(t, 22.22, *user.BMI, 0.01)
	require.NotNil(t, user.InitialWeight, "initial weight falls back to current weight")
	assert.Equal(t, 72.0, *user.InitialWeight)

	loggedIn, token, err := auth.Login("jordan", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	fromToken, err := auth.UserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fromToken.ID)

	// Registration also creates the stats row.
	stat, err := repository.NewUserStatRepository(database).ByUserID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, stat.WeeklyWorkouts)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	createTestUser(t, database, "jordan")

	_, err := auth.Register(RegisterInput{
		Username: "jordan",
		Password: "another-pass",
		Email:    "other@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = auth.Register(RegisterInput{
		Username: "someone_else",
		Password: "another-pass",
		Email:    "jordan@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	_, err := auth.Register(RegisterInput{
		Username: "jordan",
		Password: "short",
		Email:    "jordan@example.com",
	})
	assert.Error(t, err)

	_, err = auth.Register(RegisterInput{
		Username: "jordan",
		Password: "long-enough-pass",
		Email:    "not an email",
	})
	assert.Error(t, err)
}

func TestLoginFailures(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	createTestUser(t, database, "jordan")

	_, _, err := auth.Login("nobody", "whatever-pass")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, _, err = auth.Login("jordan", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	user := createTestUser(t, database, "jordan")

	// A token from an earlier session.
	oldToken := signTestToken(t, user.ID, time.Now().Add(-time.Minute))
	_, err := auth.UserFromToken(oldToken)
	require.NoError(t, err)

	err = auth.ChangePassword(user.ID, "wrong-old", "new-password-1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = auth.ChangePassword(user.ID, "correct-horse", "new-password-1")
	require.NoError(t, err)

	_, err = auth.UserFromToken(oldToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "token issued before the change is dead")

	_, freshToken, err := auth.Login("jordan", "new-password-1")
	require.NoError(t, err)
	_, err = auth.UserFromToken(freshToken)
	assert.NoError(t, err)
}

func TestUserFromTokenRejectsGarbage(t *testing.T) {
	database := newTestDB(t)
	auth := newAuthService(database)

	_, err := auth.UserFromToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func signTestToken(t *testing.T, userID string, issuedAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return signed
}
