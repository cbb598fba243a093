package model

type WorkoutTemplate struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	Description       *string `db:"description" json:"description"`
	Difficulty        *string `db:"difficulty" json:"difficulty"`
	EstimatedDuration *int    `db:"estimated_duration" json:"estimated_duration"` // minutes
	TargetArea        *string `db:"target_area" json:"target_area"`
}
