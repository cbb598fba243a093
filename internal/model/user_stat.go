package model

import (
	"time"
)

// UserStat is the per-user rolling counter row, created once at registration
// and adjusted whenever a workout transitions in or out of completed.
// Counters never go below zero. Resetting them at week/month boundaries is
// left to an external process.
type UserStat struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	WeeklyWorkouts  int       `db:"weekly_workouts" json:"weekly_workouts"`
	WeeklyCalories  float64   `db:"weekly_calories" json:"weekly_calories"`
	WeeklyDuration  int       `db:"weekly_duration" json:"weekly_duration"` // minutes
	MonthlyWorkouts int       `db:"monthly_workouts" json:"monthly_workouts"`
	Streak          int       `db:"streak" json:"streak"` // consecutive training days
	LastUpdated     time.Time `db:"last_updated" json:"last_updated"`
}
