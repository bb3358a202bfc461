package models

import "time"

type ListStatus string

const (
	ListStatusPending  ListStatus = "pending"
	ListStatusApproved ListStatus = "approved"
	ListStatusRejected ListStatus = "rejected"
)

// KitchenList: lista de ingredientes que un cocinero pide para una fecha.
type KitchenList struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"index;not null"` // cocinero (o admin, vía fast-path)
	User          User
	Title         string     `gorm:"size:150;not null"`
	TargetDate    time.Time  `gorm:"index;not null"` // día para el que se pide
	Status        ListStatus `gorm:"size:20;not null;default:pending"`
	ApprovedAt    *time.Time
	DeletedByCook *time.Time // el cocinero la ocultó de su vista; el admin la sigue viendo
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []KitchenListItem `gorm:"constraint:OnDelete:CASCADE"`
}

type KitchenListItem struct {
	ID             uint   `gorm:"primaryKey"`
	KitchenListID  uint   `gorm:"index;not null"`
	Name           string `gorm:"size:150;not null"`
	Quantity       string `gorm:"size:50;not null"` // texto libre: "0", "poco", "2 kg"...
	EstimatedPrice float64
	CreatedAt      time.Time
}
