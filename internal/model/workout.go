package model

type Workout struct {
	ID             string   `db:"id" json:"id"`
	UserID         string   `db:"user_id" json:"user_id"`
	Name           string   `db:"name" json:"name"`
	Date           string   `db:"date" json:"date"` // YYYY-MM-DD
	Time           *string  `db:"time" json:"time"` // e.g. "09:30-10:30"
	Duration       *int     `db:"duration" json:"duration"` // minutes
	CaloriesBurned *float64 `db:"calories_burned" json:"calories_burned"`
	Completed      bool     `db:"completed" json:"completed"`

	// Loaded separately, not a column.
	Exercises []*Exercise `db:"-" json:"exercises"`
}

type Exercise struct {
	ID        string  `db:"id" json:"id"`
	WorkoutID string  `db:"workout_id" json:"workout_id"`
	Name      string  `db:"name" json:"name"`
	Sets      *int    `db:"sets" json:"sets"`
	Reps      *int    `db:"reps" json:"reps"`
	Weight    *string `db:"weight" json:"weight"`
	Completed bool    `db:"completed" json:"completed"`
}
