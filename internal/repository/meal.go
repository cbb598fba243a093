package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrMealNotFound = errors.New("meal not found")

// MealFilter narrows meal listings. Empty fields are ignored.
type MealFilter struct {
	StartDate string
	EndDate   string
	Type      string
}

type MealRepository interface {
	Create(ext sqlx.Ext, meal *model.Meal) error
	ByID(id string) (*model.Meal, error)
	ForUser(userID string, filter MealFilter) ([]*model.Meal, error)
	Update(meal *model.Meal) error
	SetTotalCalories(ext sqlx.Ext, id string, total float64) error
	AdjustTotalCalories(ext sqlx.Ext, id string, delta float64) error
	Delete(id string) error
}

type mealRepository struct {
	db *sqlx.DB
}

func NewMealRepository(db *sqlx.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ext sqlx.Ext, meal *model.Meal) error {
	query := `INSERT INTO meals (id, user_id, date, type, time, total_calories, completed)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := ext.Exec(query,
		meal.ID,
		meal.UserID,
		meal.Date,
		meal.Type,
		meal.Time,
		meal.TotalCalories,
		meal.Completed,
	)

	return err
}

func (r *mealRepository) ByID(id string) (*model.Meal, error) {
	meal := &model.Meal{}
	query := `SELECT * FROM meals WHERE id = $1`

	err := r.db.Get(meal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMealNotFound
	}

	return meal, err
}

func (r *mealRepository) ForUser(userID string, filter MealFilter) ([]*model.Meal, error) {
	query := `SELECT * FROM meals WHERE user_id = $1`
	args := []any{userID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += ` AND date >= $` + itoa(len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += ` AND date <= $` + itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $` + itoa(len(args))
	}

	query += ` ORDER BY date DESC, time`

	var meals []*model.Meal
	err := r.db.Select(&meals, query, args...)
	if err != nil {
		return nil, err
	}

	return meals, nil
}

func (r *mealRepository) Update(meal *model.Meal) error {
	query := `UPDATE meals SET date = $1, type = $2, time = $3, total_calories = $4, completed = $5 WHERE id = $6`

	result, err := r.db.Exec(query,
		meal.Date,
		meal.Type,
		meal.Time,
		meal.TotalCalories,
		meal.Completed,
		meal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMealNotFound
	}

	return nil
}

func (r *mealRepository) SetTotalCalories(ext sqlx.Ext, id string, total float64) error {
	query := `UPDATE meals SET total_calories = $1 WHERE id = $2`

	_, err := ext.Exec(query, total, id)
	return err
}

// AdjustTotalCalories applies a signed delta in a single statement, floored
// at zero, so concurrent food writes cannot lose each other's updates.
func (r *mealRepository) AdjustTotalCalories(ext sqlx.Ext, id string, delta float64) error {
	query := `UPDATE meals
	          SET total_calories = CASE WHEN total_calories + $1 < 0 THEN 0 ELSE total_calories + $1 END
	          WHERE id = $2`

	_, err := ext.Exec(query, delta, id)
	return err
}

func (r *mealRepository) Delete(id string) error {
	query := `DELETE FROM meals WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMealNotFound
	}

	return nil
}
