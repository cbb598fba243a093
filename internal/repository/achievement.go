package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var (
	ErrAchievementNotFound  = errors.New("achievement not found")
	ErrDuplicateAchievement = errors.New("achievement with this title already exists")
)

type AchievementRepository interface {
	Create(achievement *model.Achievement) error
	ByID(id string) (*model.Achievement, error)
	ForUser(userID string) ([]*model.Achievement, error)
	CompletedForUser(userID string) ([]*model.Achievement, error)
	ByUserAndTitle(userID, title string) (*model.Achievement, error)
	Update(achievement *model.Achievement) error
	Delete(id string) error
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(achievement *model.Achievement) error {
	query := `INSERT INTO achievements (id, user_id, title, description, icon, color, date_earned, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		achievement.ID,
		achievement.UserID,
		achievement.Title,
		achievement.Description,
		achievement.Icon,
		achievement.Color,
		achievement.DateEarned,
		achievement.Completed,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateAchievement
	}

	return err
}

func (r *achievementRepository) ByID(id string) (*model.Achievement, error) {
	achievement := &model.Achievement{}
	query := `SELECT * FROM achievements WHERE id = $1`

	err := r.db.Get(achievement, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAchievementNotFound
	}

	return achievement, err
}

func (r *achievementRepository) ForUser(userID string) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	query := `SELECT * FROM achievements WHERE user_id = $1`

	err := r.db.Select(&achievements, query, userID)
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *achievementRepository) CompletedForUser(userID string) ([]*model.Achievement, error) {
	var achievements []*model.Achievement
	query := `SELECT * FROM achievements WHERE user_id = $1 AND completed = TRUE ORDER BY date_earned DESC`

	err := r.db.Select(&achievements, query, userID)
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *achievementRepository) ByUserAndTitle(userID, title string) (*model.Achievement, error) {
	achievement := &model.Achievement{}
	query := `SELECT * FROM achievements WHERE user_id = $1 AND title = $2`

	err := r.db.Get(achievement, query, userID, title)
	if err == sql.ErrNoRows {
		return nil, ErrAchievementNotFound
	}

	return achievement, err
}

func (r *achievementRepository) Update(achievement *model.Achievement) error {
	query := `UPDATE achievements SET title = $1, description = $2, icon = $3, color = $4, date_earned = $5, completed = $6 WHERE id = $7`

	result, err := r.db.Exec(query,
		achievement.Title,
		achievement.Description,
		achievement.Icon,
		achievement.Color,
		achievement.DateEarned,
		achievement.Completed,
		achievement.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateAchievement
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAchievementNotFound
	}

	return nil
}

func (r *achievementRepository) Delete(id string) error {
	query := `DELETE FROM achievements WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAchievementNotFound
	}

	return nil
}
