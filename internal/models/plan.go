package models

import "time"

// Plan rows are history: the newest row per user is the active plan.
type Plan struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	GymLabel  int       `gorm:"not null"`
	DietLabel int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type ProgressEntry struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"not null;index"`
	PreviousWeight float64   `gorm:"not null"`
	NewWeight      float64   `gorm:"not null"`
	RecordedOn     time.Time `gorm:"type:date;not null"`
	CreatedAt      time.Time
}
