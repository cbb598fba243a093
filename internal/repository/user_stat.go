package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrUserStatNotFound = errors.New("user stats not found")

type UserStatRepository interface {
	Create(ext sqlx.Ext, stat *model.UserStat) error
	ByUserID(userID string) (*model.UserStat, error)
	ApplyWorkoutDelta(ext sqlx.Ext, userID string, workouts, duration int, calories float64, now time.Time) error
}

type userStatRepository struct {
	db *sqlx.DB
}

func NewUserStatRepository(db *sqlx.DB) UserStatRepository {
	return &userStatRepository{db: db}
}

func (r *userStatRepository) Create(ext sqlx.Ext, stat *model.UserStat) error {
	query := `INSERT INTO user_stats (id, user_id, weekly_workouts, weekly_calories, weekly_duration, monthly_workouts, streak, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext.Exec(query,
		stat.ID,
		stat.UserID,
		stat.WeeklyWorkouts,
		stat.WeeklyCalories,
		stat.WeeklyDuration,
		stat.MonthlyWorkouts,
		stat.Streak,
		stat.LastUpdated,
	)

	return err
}

func (r *userStatRepository) ByUserID(userID string) (*model.UserStat, error) {
	stat := &model.UserStat{}
	query := `SELECT * FROM user_stats WHERE user_id = $1`

	err := r.db.Get(stat, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUserStatNotFound
	}

	return stat, err
}

// ApplyWorkoutDelta adjusts the rolling counters by the signed deltas in a
// single statement, floored at zero, so concurrent completion toggles cannot
// lose each other's updates.
func (r *userStatRepository) ApplyWorkoutDelta(ext sqlx.Ext, userID string, workouts, duration int, calories float64, now time.Time) error {
	// CASE instead of scalar MAX so the floor works on Postgres too.
	query := `UPDATE user_stats
	          SET weekly_workouts  = CASE WHEN weekly_workouts + $1 < 0 THEN 0 ELSE weekly_workouts + $1 END,
	              monthly_workouts = CASE WHEN monthly_workouts + $1 < 0 THEN 0 ELSE monthly_workouts + $1 END,
	              weekly_duration  = CASE WHEN weekly_duration + $2 < 0 THEN 0 ELSE weekly_duration + $2 END,
	              weekly_calories  = CASE WHEN weekly_calories + $3 < 0 THEN 0 ELSE weekly_calories + $3 END,
	              last_updated     = $4
	          WHERE user_id = $5`

	result, err := ext.Exec(query, workouts, duration, calories, now, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserStatNotFound
	}

	return nil
}
