package model

type HealthMetric struct {
	ID               string   `db:"id" json:"id"`
	UserID           string   `db:"user_id" json:"user_id"`
	Date             string   `db:"date" json:"date"` // YYYY-MM-DD, unique per user
	Weight           *float64 `db:"weight" json:"weight"`
	Steps            *int     `db:"steps" json:"steps"`
	CaloriesBurned   *float64 `db:"calories_burned" json:"calories_burned"`
	WorkoutDuration  *int     `db:"workout_duration" json:"workout_duration"` // minutes
	SleepDuration    *float64 `db:"sleep_duration" json:"sleep_duration"`     // hours
	RestingHeartRate *int     `db:"resting_heart_rate" json:"resting_heart_rate"`
}
