package model

type Meal struct {
	ID            string  `db:"id" json:"id"`
	UserID        string  `db:"user_id" json:"user_id"`
	Date          string  `db:"date" json:"date"` // YYYY-MM-DD
	Type          string  `db:"type" json:"type"` // breakfast, lunch, dinner, snack
	Time          *string `db:"time" json:"time"`
	TotalCalories float64 `db:"total_calories" json:"total_calories"`
	Completed     bool    `db:"completed" json:"completed"`

	// Loaded separately, not a column.
	Foods []*Food `db:"-" json:"foods"`
}

type Food struct {
	ID       string   `db:"id" json:"id"`
	MealID   string   `db:"meal_id" json:"meal_id"`
	Name     string   `db:"name" json:"name"`
	Amount   *string  `db:"amount" json:"amount"`
	Calories *float64 `db:"calories" json:"calories"`
	Protein  *float64 `db:"protein" json:"protein"` // g
	Carbs    *float64 `db:"carbs" json:"carbs"`     // g
	Fat      *float64 `db:"fat" json:"fat"`         // g
}
