package users

import (
	"errors"
	"strings"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateCookRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CookResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POST /api/users/cooks  (admin)
func CreateCookHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCookRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nombre, correo y contraseña son obligatorios")
		}

		// El correo es único incluso contra cocineros dados de baja
		var count int64
		if err := database.DB.Unscoped().Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo verificar el correo")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Este correo ya está registrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
		}

		cook := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleCook,
		}
		if err := database.DB.Create(&cook).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el cocinero")
		}

		return c.Status(fiber.StatusCreated).JSON(CookResponse{
			ID:    cook.ID,
			Name:  cook.Name,
			Email: cook.Email,
		})
	}
}

// GET /api/users/cooks  (admin)
func ListCooksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cooks []models.User
		if err := database.DB.
			Where("role = ?", models.RoleCook).
			Order("name asc").
			Find(&cooks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los cocineros")
		}

		resp := make([]CookResponse, 0, len(cooks))
		for _, cook := range cooks {
			resp = append(resp, CookResponse{ID: cook.ID, Name: cook.Name, Email: cook.Email})
		}
		return c.JSON(resp)
	}
}

// DELETE /api/users/cooks/:id  (admin; baja lógica, el historial de pagos y
// listas del cocinero sigue apuntando a su registro)
func DeleteCookHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookID, err := c.ParamsInt("id")
		if err != nil || cookID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var cook models.User
		if err := database.DB.
			Where("id = ? AND role = ?", cookID, models.RoleCook).
			First(&cook).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Cocinero no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el cocinero")
		}

		if err := database.DB.Delete(&cook).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el cocinero")
		}

		return c.JSON(fiber.Map{"message": "Cocinero eliminado"})
	}
}
