package database

import (
	"log"

	"burgerclub-backend/internal/config"
	"burgerclub-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	// La fila de capital se crea perezosamente en el primer Read del ledger;
	// aquí solo se avisa si alguna vez quedó más de una.
	var capCount int64
	DB.Model(&models.Capital{}).Count(&capCount)
	if capCount > 1 {
		log.Printf("[WARN] Hay %d filas de capital; solo la primera (id asc) es autoritativa.", capCount)
	}

	log.Println("Conexión a la base de datos lista. Migración completada.")
}

// Migrate aplica el esquema completo. Separado de Init para poder usarlo
// también sobre la base en memoria de los tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Capital{},
		&models.KitchenList{},
		&models.KitchenListItem{},
		&models.ShoppingItem{},
		&models.NightSale{},
		&models.PayrollPayment{},
		&models.Task{},
		&models.AuditLog{},
	)
}
