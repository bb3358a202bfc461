package auth

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"burgerclub-backend/internal/config"
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
	cfg := &config.Config{JWTSecret: "0123456789abcdef0123456789abcdef"}
	app := fiber.New()
	app.Post("/auth/register-admin", RegisterAdminHandler(cfg))
	return app
}

func postRegister(t *testing.T, app *fiber.App, body string) (int, string) {
	req := httptest.NewRequest("POST", "/auth/register-admin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestRegisterAdminBlocksSecond(t *testing.T) {
	db := setupTestDB(t, t.Name())
	database.DB = db

	app := newTestApp()
	status, body := postRegister(t, app, `{"name":"Dueño","email":"dueno@burgerclub.mx","password":"secreta"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", status, body)
	}

	status, body = postRegister(t, app, `{"name":"Otro","email":"otro@burgerclub.mx","password":"secreta"}`)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 got %d (%s)", status, body)
	}

	var admins int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	if admins != 1 {
		t.Fatalf("expected a single admin got %d", admins)
	}
}

func TestRegisterAdminCheckFailureIsNotSilent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	database.DB = db

	// si el conteo de admins falla, el bootstrap no debe seguir de largo
	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	app := newTestApp()
	status, body := postRegister(t, app, `{"name":"Dueño","email":"dueno@burgerclub.mx","password":"secreta"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 got %d (%s)", status, body)
	}
	if !strings.Contains(body, "No se pudo verificar el administrador") {
		t.Fatalf("unexpected body: %s", body)
	}
}
