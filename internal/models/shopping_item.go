package models

import "time"

// ShoppingItem: línea de gasto de la lista de compras. Se captura a mano
// desde la pantalla del día o se materializa al aprobar una KitchenList.
type ShoppingItem struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:200;not null"`
	Price        float64   // puede ser 0 (precio aún desconocido)
	IsCompleted  bool      `gorm:"not null;default:false"`
	PurchaseDate time.Time `gorm:"index;not null"`
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
