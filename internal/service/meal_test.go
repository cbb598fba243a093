package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitatrack/vitatrack/internal/repository"
)

func newMealService(database *sqlx.DB) *MealService {
	return NewMealService(database, repository.NewMealRepository(database), repository.NewFoodRepository(database))
}

func TestMealCreateSumsInlineFoods(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	meals := newMealService(database)

	meal, err := meals.Create(user.ID, MealCreateInput{
		Date:          "2026-03-01",
		Type:          "lunch",
		TotalCalories: 9000, // client total loses to the itemized sum
		Foods: []FoodInput{
			{Name: "rice", Calories: ptr(100.0)},
			{Name: "chicken", Calories: ptr(250.0)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 350.0, meal.TotalCalories)
	assert.Len(t, meal.Foods, 2)

	got, err := meals.ByID(user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, got.TotalCalories)
	assert.Len(t, got.Foods, 2)
}

func TestMealCreateKeepsClientTotalWithoutFoodCalories(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	meals := newMealService(database)

	meal, err := meals.Create(user.ID, MealCreateInput{
		Date:          "2026-03-01",
		Type:          "snack",
		TotalCalories: 120,
		Foods:         []FoodInput{{Name: "apple"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, meal.TotalCalories)
}

func TestFoodMutationsAdjustMealTotal(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	meals := newMealService(database)

	meal, err := meals.Create(user.ID, MealCreateInput{
		Date: "2026-03-01",
		Type: "dinner",
		Foods: []FoodInput{
			{Name: "rice", Calories: ptr(100.0)},
			{Name: "chicken", Calories: ptr(250.0)},
		},
	})
	require.NoError(t, err)

	// Adding a food bumps the total.
	salad, err := meals.AddFood(user.ID, meal.ID, FoodInput{Name: "salad", Calories: ptr(200.0)})
	require.NoError(t, err)

	got, err := meals.ByID(user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 550.0, got.TotalCalories)

	// Editing a food applies the signed difference.
	_, err = meals.UpdateFood(user.ID, salad.ID, FoodUpdateInput{Calories: ptr(50.0)})
	require.NoError(t, err)

	got, err = meals.ByID(user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, got.TotalCalories)

	// Removing a food subtracts it.
	err = meals.DeleteFood(user.ID, salad.ID)
	require.NoError(t, err)

	got, err = meals.ByID(user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, got.TotalCalories)
	assert.Len(t, got.Foods, 2)
}

func TestMealTotalFloorsAtZero(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	meals := newMealService(database)

	meal, err := meals.Create(user.ID, MealCreateInput{
		Date:          "2026-03-01",
		Type:          "snack",
		TotalCalories: 10,
	})
	require.NoError(t, err)

	food, err := meals.AddFood(user.ID, meal.ID, FoodInput{Name: "bar", Calories: ptr(50.0)})
	require.NoError(t, err)

	// Drop the stored total below the food's calories, then delete the food.
	_, err = meals.Update(user.ID, meal.ID, MealUpdateInput{TotalCalories: ptr(20.0)})
	require.NoError(t, err)

	err = meals.DeleteFood(user.ID, food.ID)
	require.NoError(t, err)

	got, err := meals.ByID(user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TotalCalories, "total never goes negative")
}

func TestMealOwnership(t *testing.T) {
	database := newTestDB(t)
	owner := createTestUser(t, database, "owner")
	intruder := createTestUser(t, database, "intruder")
	meals := newMealService(database)

	meal, err := meals.Create(owner.ID, MealCreateInput{Date: "2026-03-01", Type: "lunch"})
	require.NoError(t, err)

	_, err = meals.ByID(intruder.ID, meal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = meals.Delete(intruder.ID, meal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = meals.AddFood(intruder.ID, meal.ID, FoodInput{Name: "rice"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMealListFilters(t *testing.T) {
	database := newTestDB(t)
	user := createTestUser(t, database, "jordan")
	meals := newMealService(database)

	for _, m := range []MealCreateInput{
		{Date: "2026-03-01", Type: "breakfast"},
		{Date: "2026-03-02", Type: "lunch"},
		{Date: "2026-03-05", Type: "lunch"},
	} {
		_, err := meals.Create(user.ID, m)
		require.NoError(t, err)
	}

	listed, err := meals.Meals(user.ID, repository.MealFilter{StartDate: "2026-03-02", EndDate: "2026-03-04"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "2026-03-02", listed[0].Date)

	listed, err = meals.Meals(user.ID, repository.MealFilter{Type: "lunch"})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
