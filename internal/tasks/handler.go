package tasks

import (
	"errors"
	"strings"
	"time"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title    string `json:"title"`
	TaskDate string `json:"task_date"` // "2025-12-09", vacío = hoy
}

type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TaskDate    string `json:"task_date"`
	IsCompleted bool   `json:"is_completed"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		TaskDate:    t.TaskDate.Format("2006-01-02"),
		IsCompleted: t.IsCompleted,
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse("2006-01-02", s)
}

// POST /api/tasks
func CreateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El título es obligatorio")
		}

		taskDate, err := parseDate(body.TaskDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
		}

		task := models.Task{
			Title:       body.Title,
			TaskDate:    taskDate,
			IsCompleted: false,
		}
		if err := database.DB.Create(&task).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el pendiente")
		}

		return c.Status(fiber.StatusCreated).JSON(toTaskResponse(&task))
	}
}

// GET /api/tasks?date=2025-12-09
func ListTasksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, debe ser 'YYYY-MM-DD'")
		}

		var tasks []models.Task
		if err := database.DB.
			Where("task_date = ?", date).
			Order("created_at asc").
			Find(&tasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pendientes")
		}

		resp := make([]TaskResponse, 0, len(tasks))
		for i := range tasks {
			resp = append(resp, toTaskResponse(&tasks[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/tasks/:id/toggle
func ToggleTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		taskID, err := c.ParamsInt("id")
		if err != nil || taskID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var task models.Task
		if err := database.DB.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pendiente no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el pendiente")
		}

		task.IsCompleted = !task.IsCompleted
		if err := database.DB.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("is_completed", task.IsCompleted).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el pendiente")
		}

		return c.JSON(toTaskResponse(&task))
	}
}

// DELETE /api/tasks/:id
func DeleteTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		taskID, err := c.ParamsInt("id")
		if err != nil || taskID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		res := database.DB.Delete(&models.Task{}, "id = ?", taskID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el pendiente")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Pendiente no encontrado")
		}
		return c.JSON(fiber.Map{"message": "Pendiente eliminado"})
	}
}
