package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
)

var ErrFoodNotFound = errors.New("food not found")

type FoodRepository interface {
	Create(ext sqlx.Ext, food *model.Food) error
	ByID(id string) (*model.Food, error)
	ByMeal(mealID string) ([]*model.Food, error)
	ForMeals(mealIDs []string) (map[string][]*model.Food, error)
	Update(ext sqlx.Ext, food *model.Food) error
	Delete(ext sqlx.Ext, id string) error
}

type foodRepository struct {
	db *sqlx.DB
}

func NewFoodRepository(db *sqlx.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ext sqlx.Ext, food *model.Food) error {
	query := `INSERT INTO foods (id, meal_id, name, amount, calories, protein, carbs, fat)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext.Exec(query,
		food.ID,
		food.MealID,
		food.Name,
		food.Amount,
		food.Calories,
		food.Protein,
		food.Carbs,
		food.Fat,
	)

	return err
}

func (r *foodRepository) ByID(id string) (*model.Food, error) {
	food := &model.Food{}
	query := `SELECT * FROM foods WHERE id = $1`

	err := r.db.Get(food, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFoodNotFound
	}

	return food, err
}

func (r *foodRepository) ByMeal(mealID string) ([]*model.Food, error) {
	var foods []*model.Food
	query := `SELECT * FROM foods WHERE meal_id = $1 ORDER BY name`

	err := r.db.Select(&foods, query, mealID)
	if err != nil {
		return nil, err
	}

	return foods, nil
}

// ForMeals loads the foods of many meals in one query, keyed by meal id.
func (r *foodRepository) ForMeals(mealIDs []string) (map[string][]*model.Food, error) {
	byMeal := make(map[string][]*model.Food, len(mealIDs))
	if len(mealIDs) == 0 {
		return byMeal, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM foods WHERE meal_id IN (?) ORDER BY name`, mealIDs)
	if err != nil {
		return nil, err
	}

	var foods []*model.Food
	err = r.db.Select(&foods, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, food := range foods {
		byMeal[food.MealID] = append(byMeal[food.MealID], food)
	}

	return byMeal, nil
}

func (r *foodRepository) Update(ext sqlx.Ext, food *model.Food) error {
	query := `UPDATE foods SET name = $1, amount = $2, calories = $3, protein = $4, carbs = $5, fat = $6 WHERE id = $7`

	result, err := ext.Exec(query,
		food.Name,
		food.Amount,
		food.Calories,
		food.Protein,
		food.Carbs,
		food.Fat,
		food.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFoodNotFound
	}

	return nil
}

func (r *foodRepository) Delete(ext sqlx.Ext, id string) error {
	query := `DELETE FROM foods WHERE id = $1`

	result, err := ext.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFoodNotFound
	}

	return nil
}
