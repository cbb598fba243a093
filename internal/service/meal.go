package service

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
)

type MealService struct {
	db    *sqlx.DB
	meals repository.MealRepository
	foods repository.FoodRepository
}

func NewMealService(db *sqlx.DB, meals repository.MealRepository, foods repository.FoodRepository) *MealService {
	return &MealService{db: db, meals: meals, foods: foods}
}

// Meals lists a user's meals with their foods attached.
func (s *MealService) Meals(userID string, filter repository.MealFilter) ([]*model.Meal, error) {
	meals, err := s.meals.ForUser(userID, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(meals))
	for i, meal := range meals {
		ids[i] = meal.ID
	}

	byMeal, err := s.foods.ForMeals(ids)
	if err != nil {
		return nil, err
	}
	for _, meal := range meals {
		meal.Foods = byMeal[meal.ID]
		if meal.Foods == nil {
			meal.Foods = []*model.Food{}
		}
	}

	return meals, nil
}

// ByID loads a meal with its foods, enforcing ownership.
func (s *MealService) ByID(userID, mealID string) (*model.Meal, error) {
	meal, err := s.meals.ByID(mealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}

	foods, err := s.foods.ByMeal(meal.ID)
	if err != nil {
		return nil, err
	}
	meal.Foods = foods
	if meal.Foods == nil {
		meal.Foods = []*model.Food{}
	}

	return meal, nil
}

type FoodInput struct {
	Name     string
	Amount   *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

type MealCreateInput struct {
	Date          string // validated YYYY-MM-DD
	Type          string
	Time          *string
	TotalCalories float64
	Completed     bool
	Foods         []FoodInput
}

// Create inserts the meal and any inline foods in one transaction. When the
// foods carry calories their sum wins over the client-sent total, so the
// stored total always matches the itemized foods.
func (s *MealService) Create(userID string, in MealCreateInput) (*model.Meal, error) {
	meal := &model.Meal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Date:          in.Date,
		Type:          in.Type,
		Time:          in.Time,
		TotalCalories: in.TotalCalories,
		Completed:     in.Completed,
		Foods:         []*model.Food{},
	}

	var foodTotal float64
	for _, f := range in.Foods {
		food := &model.Food{
			ID:       uuid.New().String(),
			MealID:   meal.ID,
			Name:     f.Name,
			Amount:   f.Amount,
			Calories: f.Calories,
			Protein:  f.Protein,
			Carbs:    f.Carbs,
			Fat:      f.Fat,
		}
		if food.Calories != nil {
			foodTotal += *food.Calories
		}
		meal.Foods = append(meal.Foods, food)
	}
	if foodTotal > 0 {
		meal.TotalCalories = foodTotal
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.meals.Create(tx, meal)
	if err != nil {
		return nil, err
	}
	for _, food := range meal.Foods {
		err = s.foods.Create(tx, food)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return meal, nil
}

type MealUpdateInput struct {
	Date          *string // validated YYYY-MM-DD
	Type          *string
	Time          *string
	TotalCalories *float64
	Completed     *bool
}

func (s *MealService) Update(userID, mealID string, in MealUpdateInput) (*model.Meal, error) {
	meal, err := s.meals.ByID(mealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}

	if in.Date != nil {
		meal.Date = *in.Date
	}
	if in.Type != nil {
		meal.Type = *in.Type
	}
	if in.Time != nil {
		meal.Time = in.Time
	}
	if in.TotalCalories != nil {
		meal.TotalCalories = *in.TotalCalories
	}
	if in.Completed != nil {
		meal.Completed = *in.Completed
	}

	err = s.meals.Update(meal)
	if err != nil {
		return nil, err
	}

	return s.ByID(userID, mealID)
}

func (s *MealService) Delete(userID, mealID string) error {
	meal, err := s.meals.ByID(mealID)
	if err != nil {
		return err
	}
	if meal.UserID != userID {
		return ErrForbidden
	}

	return s.meals.Delete(mealID)
}

// AddFood inserts a food and bumps the meal total by its calories in one
// transaction.
func (s *MealService) AddFood(userID, mealID string, in FoodInput) (*model.Food, error) {
	meal, err := s.meals.ByID(mealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}

	food := &model.Food{
		ID:       uuid.New().String(),
		MealID:   meal.ID,
		Name:     in.Name,
		Amount:   in.Amount,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.foods.Create(tx, food)
	if err != nil {
		return nil, err
	}
	if food.Calories != nil && *food.Calories != 0 {
		err = s.meals.AdjustTotalCalories(tx, meal.ID, *food.Calories)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return food, nil
}

type FoodUpdateInput struct {
	Name     *string
	Amount   *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

// UpdateFood rewrites a food and applies the calorie difference to the meal
// total in the same transaction. Ownership is checked through the parent meal.
func (s *MealService) UpdateFood(userID, foodID string, in FoodUpdateInput) (*model.Food, error) {
	food, err := s.foods.ByID(foodID)
	if err != nil {
		return nil, err
	}
	meal, err := s.meals.ByID(food.MealID)
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}

	var oldCalories float64
	if food.Calories != nil {
		oldCalories = *food.Calories
	}

	if in.Name != nil {
		food.Name = *in.Name
	}
	if in.Amount != nil {
		food.Amount = in.Amount
	}
	if in.Calories != nil {
		food.Calories = in.Calories
	}
	if in.Protein != nil {
		food.Protein = in.Protein
	}
	if in.Carbs != nil {
		food.Carbs = in.Carbs
	}
	if in.Fat != nil {
		food.Fat = in.Fat
	}

	var newCalories float64
	if food.Calories != nil {
		newCalories = *food.Calories
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.foods.Update(tx, food)
	if err != nil {
		return nil, err
	}
	if delta := newCalories - oldCalories; delta != 0 {
		err = s.meals.AdjustTotalCalories(tx, meal.ID, delta)
		if err != nil {
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return food, nil
}

// DeleteFood removes a food and subtracts its calories from the meal total,
// floored at zero.
func (s *MealService) DeleteFood(userID, foodID string) error {
	food, err := s.foods.ByID(foodID)
	if err != nil {
		return err
	}
	meal, err := s.meals.ByID(food.MealID)
	if err != nil {
		return err
	}
	if meal.UserID != userID {
		return ErrForbidden
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = s.foods.Delete(tx, food.ID)
	if err != nil {
		return err
	}
	if food.Calories != nil && *food.Calories != 0 {
		err = s.meals.AdjustTotalCalories(tx, meal.ID, -*food.Calories)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
