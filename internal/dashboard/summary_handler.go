package dashboard

import (
	"time"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/ledger"
	"burgerclub-backend/internal/models"
	"burgerclub-backend/internal/nightsale"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	Capital      float64 `json:"capital"`       // monto capturado/corregido
	TotalSpent   float64 `json:"total_spent"`   // compras + nómina, histórico
	Available    float64 `json:"available"`     // capital - gastado
	SpentToday   float64 `json:"spent_today"`   // compras de hoy
	RecentIncome float64 `json:"recent_income"` // cortes aceptados, últimas 35h
	PercentUsed  float64 `json:"percent_used"`
}

// GET /api/dashboard/summary  (admin)
// Los agregados de la pantalla principal: se recalculan completos en cada
// carga, sin caché ni acumuladores propios.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ledgerSvc := ledger.NewService(database.DB)
		cap, err := ledgerSvc.Read()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el capital")
		}

		var shoppingTotal float64
		if err := database.DB.Model(&models.ShoppingItem{}).
			Select("COALESCE(SUM(price), 0)").
			Scan(&shoppingTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el gasto")
		}

		var payrollTotal float64
		if err := database.DB.Model(&models.PayrollPayment{}).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&payrollTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el gasto")
		}

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		var spentToday float64
		if err := database.DB.Model(&models.ShoppingItem{}).
			Select("COALESCE(SUM(price), 0)").
			Where("purchase_date = ?", today).
			Scan(&spentToday).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el gasto de hoy")
		}

		saleSvc := nightsale.NewService(database.DB, ledgerSvc)
		recentIncome, err := saleSvc.RecentIncome()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron calcular los ingresos")
		}

		totalSpent := shoppingTotal + payrollTotal

		percentUsed := 0.0
		if cap.Amount > 0 {
			percentUsed = totalSpent / cap.Amount * 100
			if percentUsed > 100 {
				percentUsed = 100
			}
		}

		return c.JSON(SummaryResponse{
			Capital:      cap.Amount,
			TotalSpent:   totalSpent,
			Available:    cap.Amount - totalSpent,
			SpentToday:   spentToday,
			RecentIncome: recentIncome,
			PercentUsed:  percentUsed,
		})
	}
}
