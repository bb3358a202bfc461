package models

import "time"

// Capital: saldo compartido del negocio. Una sola fila autoritativa.
type Capital struct {
	ID        uint    `gorm:"primaryKey"`
	Amount    float64 `gorm:"not null"` // MXN
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Monto inicial cuando la fila no existe todavía.
const InitialCapital = 5000.00
