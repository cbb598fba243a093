package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

type UserRepository interface {
	Create(ext sqlx.Ext, user *model.User) error
	ByID(id string) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	All() ([]*model.User, error)
	Update(user *model.User) error
	UpdateBodyMetrics(ext sqlx.Ext, id string, currentWeight, bmi *float64) error
	UpdatePassword(id, passwordHash string, changedAt time.Time) error
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// isUniqueViolation works for both SQLite and PostgreSQL.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func (r *userRepository) Create(ext sqlx.Ext, user *model.User) error {
	query := `INSERT INTO users (id, username, password_hash, name, email, profile_image, height, current_weight, initial_weight, weight_goal, bmi, body_fat_percentage, birthday, gender, password_changed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := ext.Exec(query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.Email,
		user.ProfileImage,
		user.Height,
		user.CurrentWeight,
		user.InitialWeight,
		user.WeightGoal,
		user.BMI,
		user.BodyFatPercentage,
		user.Birthday,
		user.Gender,
		user.PasswordChangedAt,
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateUser
	}

	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByUsername(username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.Get(user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) All() ([]*model.User, error) {
	var users []*model.User
	query := `SELECT * FROM users ORDER BY created_at`

	err := r.db.Select(&users, query)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users
	          SET name = $1, email = $2, profile_image = $3, height = $4, current_weight = $5,
	              initial_weight = $6, weight_goal = $7, bmi = $8, body_fat_percentage = $9,
	              birthday = $10, gender = $11
	          WHERE id = $12`

	result, err := r.db.Exec(query,
		user.Name,
		user.Email,
		user.ProfileImage,
		user.Height,
		user.CurrentWeight,
		user.InitialWeight,
		user.WeightGoal,
		user.BMI,
		user.BodyFatPercentage,
		user.Birthday,
		user.Gender,
		user.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateUser
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateBodyMetrics mirrors the latest known weight and BMI onto the user row.
func (r *userRepository) UpdateBodyMetrics(ext sqlx.Ext, id string, currentWeight, bmi *float64) error {
	query := `UPDATE users SET current_weight = $1, bmi = $2 WHERE id = $3`

	_, err := ext.Exec(query, currentWeight, bmi, id)
	return err
}

func (r *userRepository) UpdatePassword(id, passwordHash string, changedAt time.Time) error {
	query := `UPDATE users SET password_hash = $1, password_changed_at = $2 WHERE id = $3`

	_, err := r.db.Exec(query, passwordHash, changedAt, id)
	return err
}

func (r *userRepository) Delete(id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
