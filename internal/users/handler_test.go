package users

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"burgerclub-backend/internal/database"
	"burgerclub-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/users/cooks", CreateCookHandler())
	return app
}

func postCook(t *testing.T, app *fiber.App, body string) (int, string) {
	req := httptest.NewRequest("POST", "/users/cooks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestCreateCookDuplicateEmailConflict(t *testing.T) {
	db := setupTestDB(t, t.Name())
	database.DB = db

	existing := models.User{Name: "Ismerai", Email: "ismerai@burgerclub.mx", PasswordHash: "x", Role: models.RoleCook}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed cook: %v", err)
	}
	// el correo sigue ocupado aunque el cocinero esté dado de baja
	if err := db.Delete(&existing).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	app := newTestApp()
	status, body := postCook(t, app, `{"name":"Otra","email":"ISMERAI@burgerclub.mx","password":"secreta"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", status, body)
	}
	if !strings.Contains(body, "ya está registrado") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCreateCookEmailCheckFailureIsNotSilent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	database.DB = db

	// con la tabla caída el conteo falla: debe salir un 500 explícito, no
	// pasar el guard como si el correo estuviera libre
	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	app := newTestApp()
	status, body := postCook(t, app, `{"name":"Ismerai","email":"ismerai@burgerclub.mx","password":"secreta"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d (%s)", status, body)
	}
	if !strings.Contains(body, "No se pudo verificar el correo") {
		t.Fatalf("unexpected body: %s", body)
	}
}
