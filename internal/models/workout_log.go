package models

import "time"

// WorkoutLog references its plan by id only. Deleting a plan leaves its
// logs in place (orphaned), matching the documented deletion behavior.
type WorkoutLog struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;index"`
	PlanID          string    `gorm:"not null;index"`
	Date            time.Time `gorm:"type:date;not null"`
	WorkoutFocus    string    `gorm:"not null"`
	DurationMinutes int       `gorm:"not null"`
	Notes           string
	CreatedAt       time.Time
}
