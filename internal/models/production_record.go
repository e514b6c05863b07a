package models

import "time"

// ProductionRecord: Registro inmutable de producción. Se crea solo tras una
// verificación de factibilidad exitosa y nunca se modifica; el folio UUID
// identifica la corrida frente al personal de piso.
type ProductionRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Folio         string    `gorm:"size:36;uniqueIndex;not null" json:"folio"`
	RecipeID      uint      `gorm:"index;not null" json:"recipe_id"`
	Recipe        Recipe    `json:"recipe"`
	BatchCount    int       `gorm:"not null" json:"batch_count"`
	TotalProduced int       `gorm:"not null" json:"total_produced"` // batch_count * recipe.batch_size
	Date          time.Time `gorm:"index;not null" json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}
