package model

import (
	"time"
)

type Achievement struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Icon        *string    `db:"icon" json:"icon"`
	Color       *string    `db:"color" json:"color"`
	DateEarned  *time.Time `db:"date_earned" json:"date_earned"`
	Completed   bool       `db:"completed" json:"completed"`
}
