package database

import (
	"log"

	"panaderia-backend/internal/config"
	"panaderia-backend/internal/models"

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

	err = DB.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Tool{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeTool{},
		&models.RecipeStep{},
		&models.InventoryItem{},
		&models.ProductionRecord{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos exitosa. Migración completada.")
}
