package models

import "time"

// InventoryItem: Existencia actual de un ingrediente. Una fila por ingrediente.
// La unidad puede diferir de la unidad de receta del ingrediente (ej: receta en g,
// almacén en kg); la verificación de producción convierte antes de comparar.
type InventoryItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	IngredientID uint       `gorm:"uniqueIndex;not null" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"`
	CurrentStock float64    `gorm:"not null" json:"current_stock"`
	Unit         string     `gorm:"size:20;not null" json:"unit"`
	MinimumStock float64    `json:"minimum_stock"`
	LastUpdated  time.Time  `gorm:"not null" json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
