package models

import "time"

// PayrollPayment: pago de nómina a un cocinero. Se agrega como gasto en las
// vistas; nunca toca el capital directamente, por eso se borra sin reversa.
type PayrollPayment struct {
	ID          uint `gorm:"primaryKey"`
	EmployeeID  uint `gorm:"index;not null"`
	Employee    User `gorm:"foreignKey:EmployeeID"`
	Amount      float64   `gorm:"not null"`
	DaysWorked  int
	Notes       string    `gorm:"size:255"`
	PaymentDate time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
