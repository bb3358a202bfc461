package models

import "time"

// Task: pendiente del día. Sin relación con los saldos.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	TaskDate    time.Time `gorm:"index;not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
