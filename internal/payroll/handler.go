package payroll

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"burgerclub-backend/internal/audit"
	"burgerclub-backend/internal/auth"
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	EmployeeID  uint    `json:"employee_id"`
	Amount      float64 `json:"amount"`
	DaysWorked  int     `json:"days_worked"`
	Notes       string  `json:"notes"`
	PaymentDate *string `json:"payment_date"` // "2025-12-09", vacío = ahora
}

type PaymentResponse struct {
	ID          uint    `json:"id"`
	EmployeeID  uint    `json:"employee_id"`
	Employee    string  `json:"employee"`
	Amount      float64 `json:"amount"`
	DaysWorked  int     `json:"days_worked"`
	Notes       string  `json:"notes"`
	PaymentDate string  `json:"payment_date"`
}

func toPaymentResponse(p *models.PayrollPayment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Amount:      p.Amount,
		DaysWorked:  p.DaysWorked,
		Notes:       p.Notes,
		PaymentDate: p.PaymentDate.Format(time.RFC3339),
	}
	if p.Employee.ID != 0 {
		resp.Employee = p.Employee.Name
	}
	return resp
}

// POST /api/payroll  (admin)
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.EmployeeID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Selecciona un cocinero")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a 0")
		}

		var employee models.User
		if err := database.DB.Where("id = ? AND role = ?", body.EmployeeID, models.RoleCook).
			First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Cocinero no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el cocinero")
		}

		paymentDate := time.Now()
		if body.PaymentDate != nil && *body.PaymentDate != "" {
			d, err := time.Parse("2006-01-02", *body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
			}
			paymentDate = d
		}

		payment := models.PayrollPayment{
			EmployeeID:  body.EmployeeID,
			Amount:      body.Amount,
			DaysWorked:  body.DaysWorked,
			Notes:       strings.TrimSpace(body.Notes),
			PaymentDate: paymentDate,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el pago")
		}
		payment.Employee = employee

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "payroll_payment",
			EntityID:    payment.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pago de nómina a %s: %.2f MXN", employee.Name, payment.Amount),
			After:       payment,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(&payment))
	}
}

// GET /api/payroll/mine  (cocinero: sus propios pagos, lo más nuevo primero)
func ListMyPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var payments []models.PayrollPayment
		if err := database.DB.Preload("Employee").
			Where("employee_id = ?", cookID).
			Order("payment_date desc").
			Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar tus pagos")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for i := range payments {
			resp = append(resp, toPaymentResponse(&payments[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/payroll  (admin: últimos 20 pagos)
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payments []models.PayrollPayment
		if err := database.DB.Preload("Employee").
			Order("payment_date desc").
			Limit(20).
			Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pagos")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for i := range payments {
			resp = append(resp, toPaymentResponse(&payments[i]))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/payroll/:id  (admin; la nómina nunca tocó el capital, así que
// no hay nada que revertir)
func DeletePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		paymentID, err := c.ParamsInt("id")
		if err != nil || paymentID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var payment models.PayrollPayment
		if err := database.DB.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pago no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el pago")
		}

		if err := database.DB.Delete(&models.PayrollPayment{}, "id = ?", paymentID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el pago")
		}

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "payroll_payment",
			EntityID:    payment.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Pago de nómina eliminado: %.2f MXN", payment.Amount),
			Before:      payment,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(fiber.Map{"message": "Pago eliminado"})
	}
}
