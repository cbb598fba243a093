package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrTemplateNotFound = errors.New("workout template not found")

// TemplateFilter narrows template listings. Empty fields are ignored.
type TemplateFilter struct {
	Difficulty string
	TargetArea string
}

type WorkoutTemplateRepository interface {
	Create(template *model.WorkoutTemplate) error
	ByID(id string) (*model.WorkoutTemplate, error)
	All(filter TemplateFilter) ([]*model.WorkoutTemplate, error)
	Update(template *model.WorkoutTemplate) error
	Delete(id string) error
}

type workoutTemplateRepository struct {
	db *sqlx.DB
}

func NewWorkoutTemplateRepository(db *sqlx.DB) WorkoutTemplateRepository {
	return &workoutTemplateRepository{db: db}
}

func (r *workoutTemplateRepository) Create(template *model.WorkoutTemplate) error {
	query := `INSERT INTO workout_templates (id, name, description, difficulty, estimated_duration, target_area)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		template.ID,
		template.Name,
		template.Description,
		template.Difficulty,
		template.EstimatedDuration,
		template.TargetArea,
	)

	return err
}

func (r *workoutTemplateRepository) ByID(id string) (*model.WorkoutTemplate, error) {
	template := &model.WorkoutTemplate{}
	query := `SELECT * FROM workout_templates WHERE id = $1`

	err := r.db.Get(template, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}

	return template, err
}

func (r *workoutTemplateRepository) All(filter TemplateFilter) ([]*model.WorkoutTemplate, error) {
	query := `SELECT * FROM workout_templates WHERE 1=1`
	args := []any{}

	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += ` AND difficulty = $` + itoa(len(args))
	}
	if filter.TargetArea != "" {
		args = append(args, filter.TargetArea)
		query += ` AND target_area = $` + itoa(len(args))
	}

	query += ` ORDER BY name`

	var templates []*model.WorkoutTemplate
	err := r.db.Select(&templates, query, args...)
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *workoutTemplateRepository) Update(template *model.WorkoutTemplate) error {
	query := `UPDATE workout_templates SET name = $1, description = $2, difficulty = $3, estimated_duration = $4, target_area = $5 WHERE id = $6`

	result, err := r.db.Exec(query,
		template.Name,
		template.Description,
		template.Difficulty,
		template.EstimatedDuration,
		template.TargetArea,
		template.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (r *workoutTemplateRepository) Delete(id string) error {
	query := `DELETE FROM workout_templates WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTemplateNotFound
	}

	return nil
}
