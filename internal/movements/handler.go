package movements

import (
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/movements  (admin)
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.ShoppingItem
		if err := database.DB.Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer las compras")
		}

		var payments []models.PayrollPayment
		if err := database.DB.Preload("Employee").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer la nómina")
		}

		var sales []models.NightSale
		if err := database.DB.Preload("Cook").
			Where("status = ?", models.SaleStatusAccepted).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron leer los cortes")
		}

		return c.JSON(Build(items, payments, sales))
	}
}
