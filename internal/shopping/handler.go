package shopping

import (
	"errors"
	"strings"
	"time"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateItemRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PurchaseDate string  `json:"purchase_date"` // "2025-12-09", vacío = hoy
}

type UpdateItemRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

type ItemResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	IsCompleted  bool    `json:"is_completed"`
	PurchaseDate string  `json:"purchase_date"`
	CompletedAt  *string `json:"completed_at"`
}

type SummaryResponse struct {
	Weekly  float64 `json:"weekly"`  // últimos 7 días
	Monthly float64 `json:"monthly"` // mes calendario en curso
	Yearly  float64 `json:"yearly"`  // año calendario en curso
}

type DayGroup struct {
	Date  string         `json:"date"`
	Total float64        `json:"total"`
	Items []ItemResponse `json:"items"`
}

func toItemResponse(item *models.ShoppingItem) ItemResponse {
	resp := ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		IsCompleted:  item.IsCompleted,
		PurchaseDate: item.PurchaseDate.Format("2006-01-02"),
	}
	if item.CompletedAt != nil {
		formatted := item.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &formatted
	}
	return resp
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/shopping-items  (admin: captura directa en la lista del día)
func CreateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
		}

		purchaseDate, err := parseDate(body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
		}

		item := models.ShoppingItem{
			Name:         body.Name,
			Price:        body.Price,
			IsCompleted:  false,
			PurchaseDate: purchaseDate,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el artículo")
		}

		return c.Status(fiber.StatusCreated).JSON(toItemResponse(&item))
	}
}

// GET /api/shopping-items?date=2025-12-09
// Pendientes primero, lo más nuevo arriba, como la pantalla del día.
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
		}

		var items []models.ShoppingItem
		if err := database.DB.
			Where("purchase_date = ?", date).
			Order("is_completed asc, created_at desc").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los artículos")
		}

		resp := make([]ItemResponse, 0, len(items))
		for i := range items {
			resp = append(resp, toItemResponse(&items[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/shopping-items/:id  (renombrar / cambiar precio)
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("id")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		var item models.ShoppingItem
		if err := database.DB.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Artículo no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el artículo")
		}

		updates := map[string]interface{}{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			updates["name"] = name
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
			}
			updates["price"] = *body.Price
		}
		if len(updates) == 0 {
			return c.JSON(toItemResponse(&item))
		}

		if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el artículo")
		}

		return c.JSON(toItemResponse(&item))
	}
}

// POST /api/shopping-items/:id/toggle  (marcar comprado / regresar a pendiente)
func ToggleItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("id")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var item models.ShoppingItem
		if err := database.DB.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Artículo no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el artículo")
		}

		updates := map[string]interface{}{"is_completed": !item.IsCompleted}
		if !item.IsCompleted {
			now := time.Now()
			updates["completed_at"] = now
			item.CompletedAt = &now
		} else {
			updates["completed_at"] = nil
			item.CompletedAt = nil
		}
		item.IsCompleted = !item.IsCompleted

		if err := database.DB.Model(&models.ShoppingItem{}).
			Where("id = ?", item.ID).
			Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el artículo")
		}

		return c.JSON(toItemResponse(&item))
	}
}

// DELETE /api/shopping-items/:id
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("id")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		res := database.DB.Delete(&models.ShoppingItem{}, "id = ?", itemID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el artículo")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Artículo no encontrado")
		}
		return c.JSON(fiber.Map{"message": "Artículo eliminado"})
	}
}

// GET /api/shopping-items/summary
// Gasto semanal (7 días), mensual (mes en curso) y anual (año en curso).
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		weekAgo := now.AddDate(0, 0, -7)
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

		sumSince := func(since time.Time) (float64, error) {
			var total float64
			err := database.DB.Model(&models.ShoppingItem{}).
				Select("COALESCE(SUM(price), 0)").
				Where("purchase_date >= ?", since).
				Scan(&total).Error
			return total, err
		}

		weekly, err := sumSince(weekAgo)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}
		monthly, err := sumSince(monthStart)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}
		yearly, err := sumSince(yearStart)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}

		return c.JSON(SummaryResponse{Weekly: weekly, Monthly: monthly, Yearly: yearly})
	}
}

// GET /api/shopping-items/period?period=semanal|mensual|anual
// Artículos del periodo agrupados por fecha, lo más reciente primero.
func PeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		var start time.Time
		switch c.Query("period") {
		case "semanal":
			start = now.AddDate(0, 0, -7)
		case "mensual":
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		case "anual":
			start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		default:
			return fiber.NewError(fiber.StatusBadRequest, "period debe ser semanal, mensual o anual")
		}

		var items []models.ShoppingItem
		if err := database.DB.
			Where("purchase_date >= ?", start).
			Order("purchase_date desc, created_at desc").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los artículos")
		}

		groups := make([]DayGroup, 0)
		for i := range items {
			date := items[i].PurchaseDate.Format("2006-01-02")
			if len(groups) == 0 || groups[len(groups)-1].Date != date {
				groups = append(groups, DayGroup{Date: date})
			}
			g := &groups[len(groups)-1]
			g.Total += items[i].Price
			g.Items = append(g.Items, toItemResponse(&items[i]))
		}

		return c.JSON(groups)
	}
}
