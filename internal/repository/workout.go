package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// WorkoutFilter narrows workout listings. Empty fields are ignored.
type WorkoutFilter struct {
	StartDate string
	EndDate   string
	Completed *bool
}

type WorkoutRepository interface {
	Create(ext sqlx.Ext, workout *model.Workout) error
	ByID(id string) (*model.Workout, error)
	ForUser(userID string, filter WorkoutFilter) ([]*model.Workout, error)
	Update(ext sqlx.Ext, workout *model.Workout) error
	Delete(ext sqlx.Ext, id string) error
}

type workoutRepository struct {
	db *sqlx.DB
}

func NewWorkoutRepository(db *sqlx.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ext sqlx.Ext, workout *model.Workout) error {
	query := `INSERT INTO workouts (id, user_id, name, date, time, duration, calories_burned, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext.Exec(query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Date,
		workout.Time,
		workout.Duration,
		workout.CaloriesBurned,
		workout.Completed,
	)

	return err
}

func (r *workoutRepository) ByID(id string) (*model.Workout, error) {
	workout := &model.Workout{}
	query := `SELECT * FROM workouts WHERE id = $1`

	err := r.db.Get(workout, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrWorkoutNotFound
	}

	return workout, err
}

func (r *workoutRepository) ForUser(userID string, filter WorkoutFilter) ([]*model.Workout, error) {
	query := `SELECT * FROM workouts WHERE user_id = $1`
	args := []any{userID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += ` AND date >= $` + itoa(len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += ` AND date <= $` + itoa(len(args))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		query += ` AND completed = $` + itoa(len(args))
	}

	query += ` ORDER BY date DESC`

	var workouts []*model.Workout
	err := r.db.Select(&workouts, query, args...)
	if err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *workoutRepository) Update(ext sqlx.Ext, workout *model.Workout) error {
	query := `UPDATE workouts SET name = $1, date = $2, time = $3, duration = $4, calories_burned = $5, completed = $6 WHERE id = $7`

	result, err := ext.Exec(query,
		workout.Name,
		workout.Date,
		workout.Time,
		workout.Duration,
		workout.CaloriesBurned,
		workout.Completed,
		workout.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func (r *workoutRepository) Delete(ext sqlx.Ext, id string) error {
	query := `DELETE FROM workouts WHERE id = $1`

	result, err := ext.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}
