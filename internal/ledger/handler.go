package ledger

import (
	"fmt"
	"log"

	"burgerclub-backend/internal/audit"
	"burgerclub-backend/internal/auth"
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CapitalResponse struct {
	ID     uint    `json:"id"`
	Amount float64 `json:"amount"`
}

type SetCapitalRequest struct {
	Amount float64 `json:"amount"`
}

// GET /api/capital
func GetCapitalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc := NewService(database.DB)
		cap, err := svc.Read()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el capital")
		}
		return c.JSON(CapitalResponse{ID: cap.ID, Amount: cap.Amount})
	}
}

// PUT /api/capital  (solo admin: corrección manual del saldo)
func SetCapitalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetCapitalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		svc := NewService(database.DB)
		before, err := svc.Read()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el capital")
		}

		cap, err := svc.Set(body.Amount)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el capital")
		}

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "capital",
			EntityID:    cap.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Capital corregido a %.2f MXN", cap.Amount),
			Before:      fiber.Map{"amount": before.Amount},
			After:       fiber.Map{"amount": cap.Amount},
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(CapitalResponse{ID: cap.ID, Amount: cap.Amount})
	}
}
