package model

import (
	"time"
)

type User struct {
	ID                string     `db:"id" json:"id"`
	Username          string     `db:"username" json:"username"`
	PasswordHash      string     `db:"password_hash" json:"-"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	ProfileImage      *string    `db:"profile_image" json:"profile_image"`
	Height            *float64   `db:"height" json:"height"`                 // cm
	CurrentWeight     *float64   `db:"current_weight" json:"current_weight"` // kg
	InitialWeight     *float64   `db:"initial_weight" json:"initial_weight"` // kg
	WeightGoal        *float64   `db:"weight_goal" json:"weight_goal"`       // kg
	BMI               *float64   `db:"bmi" json:"bmi"`
	BodyFatPercentage *float64   `db:"body_fat_percentage" json:"body_fat_percentage"`
	Birthday          *string    `db:"birthday" json:"birthday"` // YYYY-MM-DD
	Gender            *string    `db:"gender" json:"gender"`
	PasswordChangedAt *time.Time `db:"password_changed_at" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// RecalcBMI recomputes BMI from current weight and height (cm).
// Clears it when either input is missing.
func (u *User) RecalcBMI() {
	if u.CurrentWeight == nil || u.Height == nil || *u.Height <= 0 {
		u.BMI = nil
		return
	}
	heightM := *u.Height / 100
	bmi := *u.CurrentWeight / (heightM * heightM)
	u.BMI = &bmi
}
