package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type ExerciseRepository interface {
	Create(ext sqlx.Ext, exercise *model.Exercise) error
	ByID(id string) (*model.Exercise, error)
	ByWorkout(workoutID string) ([]*model.Exercise, error)
	ForWorkouts(workoutIDs []string) (map[string][]*model.Exercise, error)
	Update(exercise *model.Exercise) error
	Delete(id string) error
}

type exerciseRepository struct {
	db *sqlx.DB
}

func NewExerciseRepository(db *sqlx.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ext sqlx.Ext, exercise *model.Exercise) error {
	query := `INSERT INTO exercises (id, workout_id, name, sets, reps, weight, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := ext.Exec(query,
		exercise.ID,
		exercise.WorkoutID,
		exercise.Name,
		exercise.Sets,
		exercise.Reps,
		exercise.Weight,
		exercise.Completed,
	)

	return err
}

func (r *exerciseRepository) ByID(id string) (*model.Exercise, error) {
	exercise := &model.Exercise{}
	query := `SELECT * FROM exercises WHERE id = $1`

	err := r.db.Get(exercise, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrExerciseNotFound
	}

	return exercise, err
}

func (r *exerciseRepository) ByWorkout(workoutID string) ([]*model.Exercise, error) {
	var exercises []*model.Exercise
	query := `SELECT * FROM exercises WHERE workout_id = $1 ORDER BY name`

	err := r.db.Select(&exercises, query, workoutID)
	if err != nil {
		return nil, err
	}

	return exercises, nil
}

// ForWorkouts loads the exercises of many workouts in one query, keyed by workout id.
func (r *exerciseRepository) ForWorkouts(workoutIDs []string) (map[string][]*model.Exercise, error) {
	byWorkout := make(map[string][]*model.Exercise, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return byWorkout, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM exercises WHERE workout_id IN (?) ORDER BY name`, workoutIDs)
	if err != nil {
		return nil, err
	}

	var exercises []*model.Exercise
	err = r.db.Select(&exercises, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, exercise := range exercises {
		byWorkout[exercise.WorkoutID] = append(byWorkout[exercise.WorkoutID], exercise)
	}

	return byWorkout, nil
}

func (r *exerciseRepository) Update(exercise *model.Exercise) error {
	query := `UPDATE exercises SET name = $1, sets = $2, reps = $3, weight = $4, completed = $5 WHERE id = $6`

	result, err := r.db.Exec(query,
		exercise.Name,
		exercise.Sets,
		exercise.Reps,
		exercise.Weight,
		exercise.Completed,
		exercise.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

func (r *exerciseRepository) Delete(id string) error {
	query := `DELETE FROM exercises WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
