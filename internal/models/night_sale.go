package models

import "time"

type SaleStatus string

const (
	SaleStatusPending  SaleStatus = "pending"
	SaleStatusAccepted SaleStatus = "accepted"
	SaleStatusRejected SaleStatus = "rejected"
)

// NightSale: corte de caja nocturno que el cocinero reporta. Al aceptarlo
// el monto se abona al capital; al borrar uno aceptado se revierte el abono.
type NightSale struct {
	ID          uint `gorm:"primaryKey"`
	CookID      uint `gorm:"index;not null"`
	Cook        User `gorm:"foreignKey:CookID"`
	TotalAmount float64    `gorm:"not null"`
	Description string     `gorm:"size:500"`
	Status      SaleStatus `gorm:"size:20;not null;default:pending"`
	AcceptedAt  *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}
