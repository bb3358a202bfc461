package kitchen

import (
	"errors"
	"fmt"
	"log"
	"time"

	"burgerclub-backend/internal/audit"
	"burgerclub-backend/internal/auth"
	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LineRequest struct {
	Name           string  `json:"name"`
	Quantity       string  `json:"quantity"`
	EstimatedPrice float64 `json:"estimated_price"`
}

type CreateListRequest struct {
	Title      string        `json:"title"`
	TargetDate string        `json:"target_date"` // "2025-12-09"
	Items      []LineRequest `json:"items"`
}

type ApproveListRequest struct {
	PurchaseDate *string `json:"purchase_date"` // fecha elegida por el admin; vacío = hoy
}

type ListItemResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Urgency  Urgency `json:"urgency"`
}

type ListResponse struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Owner      string             `json:"owner,omitempty"`
	TargetDate string             `json:"target_date"`
	Status     models.ListStatus  `json:"status"`
	ApprovedAt *string            `json:"approved_at"`
	Items      []ListItemResponse `json:"items"`
}

func toListResponse(list *models.KitchenList) ListResponse {
	resp := ListResponse{
		ID:         list.ID,
		Title:      list.Title,
		TargetDate: list.TargetDate.Format("2006-01-02"),
		Status:     list.Status,
		Items:      make([]ListItemResponse, 0, len(list.Items)),
	}
	if list.User.ID != 0 {
		resp.Owner = list.User.Name
	}
	if list.ApprovedAt != nil {
		formatted := list.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	for _, item := range list.Items {
		resp.Items = append(resp.Items, ListItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Urgency:  ClassifyQuantity(item.Quantity),
		})
	}
	return resp
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return fiber.NewError(fiber.StatusBadRequest, "El título es obligatorio")
	case errors.Is(err, ErrNoLines):
		return fiber.NewError(fiber.StatusBadRequest, "La lista necesita al menos un artículo con nombre")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Lista no encontrada")
	case errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, "La lista ya no está pendiente")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(fiber.StatusForbidden, "Esta lista no es tuya")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo completar la operación")
	}
}

// parseDateOrToday interpreta "YYYY-MM-DD"; vacío significa hoy a las 00:00.
func parseDateOrToday(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", *s)
}

// POST /api/kitchen-lists
func CreateListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateListRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		targetDate, err := parseDateOrToday(&body.TargetDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
		}

		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}
		var actor models.User
		if err := database.DB.First(&actor, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
		}

		lines := make([]Line, 0, len(body.Items))
		for _, item := range body.Items {
			lines = append(lines, Line{
				Name:           item.Name,
				Quantity:       item.Quantity,
				EstimatedPrice: item.EstimatedPrice,
			})
		}

		svc := NewService(database.DB)
		list, err := svc.Submit(&actor, body.Title, targetDate, lines)
		if err != nil {
			return mapServiceError(err)
		}

		if list.Status == models.ListStatusApproved {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      actor.ID,
				UserName:    actor.Name,
				EntityType:  "kitchen_list",
				EntityID:    list.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Lista '%s' creada y auto-aprobada (%d artículos)", list.Title, len(list.Items)),
				After:       fiber.Map{"title": list.Title, "status": list.Status, "items": len(list.Items)},
			}); logErr != nil {
				log.Printf("No se pudo escribir el audit log: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toListResponse(list))
	}
}

// GET /api/kitchen-lists/mine  (cocinero: sus listas, sin las ocultadas)
func ListMyListsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var lists []models.KitchenList
		if err := database.DB.Preload("Items").
			Where("user_id = ? AND deleted_by_cook IS NULL", userID).
			Order("created_at desc").
			Find(&lists).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las listas")
		}

		resp := make([]ListResponse, 0, len(lists))
		for i := range lists {
			resp = append(resp, toListResponse(&lists[i]))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/kitchen-lists/mine/:id  (cocinero: ocultar una pendiente)
func SoftDeleteListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		listID, err := c.ParamsInt("id")
		if err != nil || listID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		svc := NewService(database.DB)
		if err := svc.SoftDelete(uint(listID), userID); err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"message": "Lista ocultada"})
	}
}

// GET /api/kitchen-lists/pending  (admin)
func ListPendingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lists []models.KitchenList
		if err := database.DB.Preload("Items").Preload("User").
			Where("status = ?", models.ListStatusPending).
			Order("target_date asc").
			Find(&lists).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las listas pendientes")
		}

		resp := make([]ListResponse, 0, len(lists))
		for i := range lists {
			resp = append(resp, toListResponse(&lists[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/kitchen-lists/:id/approve  (admin)
func ApproveListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		listID, err := c.ParamsInt("id")
		if err != nil || listID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var body ApproveListRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		purchaseDate, err := parseDateOrToday(body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_date inválida, debe ser 'YYYY-MM-DD'")
		}

		svc := NewService(database.DB)
		if err := svc.Approve(uint(listID), purchaseDate); err != nil {
			return mapServiceError(err)
		}

		userID, _ := auth.UserID(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			EntityType:  "kitchen_list",
			EntityID:    uint(listID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Lista %d aprobada, compras al %s", listID, purchaseDate.Format("2006-01-02")),
			Before:      fiber.Map{"status": models.ListStatusPending},
			After:       fiber.Map{"status": models.ListStatusApproved},
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(fiber.Map{"message": "Lista aprobada"})
	}
}

// POST /api/kitchen-lists/:id/reject  (admin)
func RejectListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		listID, err := c.ParamsInt("id")
		if err != nil || listID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		svc := NewService(database.DB)
		if err := svc.Reject(uint(listID)); err != nil {
			return mapServiceError(err)
		}
		return c.JSON(fiber.Map{"message": "Lista rechazada"})
	}
}

// DELETE /api/kitchen-lists/:id?materialize=true&purchase_date=2025-12-09  (admin)
func HardDeleteListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		listID, err := c.ParamsInt("id")
		if err != nil || listID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		materialize := c.Query("materialize") == "true"

		dateStr := c.Query("purchase_date")
		var datePtr *string
		if dateStr != "" {
			datePtr = &dateStr
		}
		purchaseDate, err := parseDateOrToday(datePtr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_date inválida, debe ser 'YYYY-MM-DD'")
		}

		svc := NewService(database.DB)
		if err := svc.HardDelete(uint(listID), materialize, purchaseDate); err != nil {
			return mapServiceError(err)
		}

		return c.JSON(fiber.Map{"message": "Lista eliminada"})
	}
}
