package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	db        *sqlx.DB
	users     repository.UserRepository
	stats     repository.UserStatRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(
	db *sqlx.DB,
	users repository.UserRepository,
	stats repository.UserStatRepository,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		db:        db,
		users:     users,
		stats:     stats,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type RegisterInput struct {
	Username      string
	Password      string
	Name          string
	Email         string
	ProfileImage  *string
	Height        *float64
	CurrentWeight *float64
	InitialWeight *float64
	WeightGoal    *float64
	Gender        *string
	Birthday      *string // validated YYYY-MM-DD
}

// Register creates the user together with its stats row.
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, err
	}

	_, err = s.users.ByUsername(in.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	_, err = s.users.ByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Initial weight falls back to the starting current weight
	initialWeight := in.InitialWeight
	if initialWeight == nil {
		initialWeight = in.CurrentWeight
	}

	user := &model.User{
		ID:            uuid.New().String(),
		Username:      in.Username,
		PasswordHash:  hash,
		Name:          in.Name,
		Email:         email,
		ProfileImage:  in.ProfileImage,
		Height:        in.Height,
		CurrentWeight: in.CurrentWeight,
		InitialWeight: initialWeight,
		WeightGoal:    in.WeightGoal,
		Gender:        in.Gender,
		Birthday:      in.Birthday,
		CreatedAt:     time.Now().UTC(),
	}
	user.RecalcBMI()

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.users.Create(tx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	stat := &model.UserStat{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		LastUpdated: time.Now().UTC(),
	}
	err = s.stats.Create(tx, stat)
	if err != nil {
		return nil, fmt.Errorf("failed to create user stats: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.users.ByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUnknownUser
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, token, nil
}

// ChangePassword rehashes the password and bumps password_changed_at so that
// tokens issued before the change stop working.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.users.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(oldPassword, user.PasswordHash)
	if err != nil {
		return ErrWrongPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(userID, hash, time.Now().UTC())
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// UserFromToken resolves a bearer token to its user. Tokens issued before
// the user's last password change are rejected.
func (s *AuthService) UserFromToken(tokenString string) (*model.User, error) {
	claims, err := s.VerifyJWT(tokenString)
	if err != nil {
		return nil, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.PasswordChangedAt != nil {
		iat, ok := claims["iat"].(float64)
		if !ok || int64(iat) < user.PasswordChangedAt.Unix() {
			return nil, ErrInvalidToken
		}
	}

	return user, nil
}
