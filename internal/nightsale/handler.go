package nightsale

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"burgerclub-backend/internal/audit"
	"burgerclub-backend/internal/auth"
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/ledger"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSaleRequest struct {
	TotalAmount float64 `json:"total_amount"`
	Description string  `json:"description"`
}

type SaleResponse struct {
	ID          uint              `json:"id"`
	Cook        string            `json:"cook,omitempty"`
	TotalAmount float64           `json:"total_amount"`
	Description string            `json:"description"`
	Status      models.SaleStatus `json:"status"`
	CreatedAt   string            `json:"created_at"`
	AcceptedAt  *string           `json:"accepted_at"`
}

func toSaleResponse(sale *models.NightSale) SaleResponse {
	resp := SaleResponse{
		ID:          sale.ID,
		TotalAmount: sale.TotalAmount,
		Description: sale.Description,
		Status:      sale.Status,
		CreatedAt:   sale.CreatedAt.Format(time.RFC3339),
	}
	if sale.Cook.ID != 0 {
		resp.Cook = sale.Cook.Name
	}
	if sale.AcceptedAt != nil {
		formatted := sale.AcceptedAt.Format(time.RFC3339)
		resp.AcceptedAt = &formatted
	}
	return resp
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a 0")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Envío no encontrado")
	case errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, "El envío ya no está pendiente")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo completar la operación")
	}
}

func newService() *Service {
	return NewService(database.DB, ledger.NewService(database.DB))
}

// POST /api/night-sales  (cocinero)
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		cookID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		sale, err := newService().Submit(cookID, body.TotalAmount, strings.TrimSpace(body.Description))
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
	}
}

// GET /api/night-sales/mine  (cocinero: pendientes + aceptados de 48h)
func ListMySalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		sales, err := newService().CookHistory(cookID, 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los envíos")
		}

		resp := make([]SaleResponse, 0, len(sales))
		for i := range sales {
			resp = append(resp, toSaleResponse(&sales[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/night-sales  (admin: pendientes + aceptados de los últimos 7 días)
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pending []models.NightSale
		if err := database.DB.Preload("Cook").
			Where("status = ?", models.SaleStatusPending).
			Order("created_at desc").
			Find(&pending).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los envíos")
		}

		weekAgo := time.Now().AddDate(0, 0, -7)
		var accepted []models.NightSale
		if err := database.DB.Preload("Cook").
			Where("status = ? AND accepted_at >= ?", models.SaleStatusAccepted, weekAgo).
			Order("accepted_at desc").
			Find(&accepted).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los envíos")
		}

		pendingResp := make([]SaleResponse, 0, len(pending))
		for i := range pending {
			pendingResp = append(pendingResp, toSaleResponse(&pending[i]))
		}
		acceptedResp := make([]SaleResponse, 0, len(accepted))
		for i := range accepted {
			acceptedResp = append(acceptedResp, toSaleResponse(&accepted[i]))
		}

		return c.JSON(fiber.Map{
			"pending":  pendingResp,
			"accepted": acceptedResp,
		})
	}
}

// POST /api/night-sales/:id/accept  (admin)
func AcceptSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := c.ParamsInt("id")
		if err != nil || saleID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		sale, err := newService().Accept(uint(saleID))
		if err != nil {
			return mapServiceError(err)
		}

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "night_sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Envío aceptado: %.2f MXN abonados al capital", sale.TotalAmount),
			Before:      fiber.Map{"status": models.SaleStatusPending},
			After:       fiber.Map{"status": models.SaleStatusAccepted, "total_amount": sale.TotalAmount},
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(toSaleResponse(sale))
	}
}

// POST /api/night-sales/:id/reject  (admin)
func RejectSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := c.ParamsInt("id")
		if err != nil || saleID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		if err := newService().Reject(uint(saleID)); err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"message": "Envío rechazado"})
	}
}

// DELETE /api/night-sales/:id  (admin; si estaba aceptado revierte el abono)
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := c.ParamsInt("id")
		if err != nil || saleID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		sale, err := newService().Delete(uint(saleID))
		if err != nil {
			return mapServiceError(err)
		}

		desc := fmt.Sprintf("Envío de %.2f MXN eliminado", sale.TotalAmount)
		if sale.Status == models.SaleStatusAccepted {
			desc = fmt.Sprintf("Envío ACEPTADO de %.2f MXN eliminado; capital revertido", sale.TotalAmount)
		}

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "night_sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionDelete,
			Description: desc,
			Before:      fiber.Map{"status": sale.Status, "total_amount": sale.TotalAmount},
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(fiber.Map{"message": "Envío eliminado"})
	}
}
