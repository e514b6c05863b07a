package models

import "time"

type ToolUsage string

const (
	ToolUsageFull        ToolUsage = "full"
	ToolUsagePartial     ToolUsage = "partial"
	ToolUsageDepreciated ToolUsage = "depreciated"
)

// Recipe: Receta maestra. BatchSize es la cantidad de piezas que produce un lote
// y SellingPrice el precio de venta por pieza.
type Recipe struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null;unique" json:"name"`
	BatchSize    int     `gorm:"not null" json:"batch_size"` // piezas por lote, > 0
	SellingPrice float64 `gorm:"not null" json:"selling_price"`
	Available    bool    `gorm:"not null;default:true" json:"available"`

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Tools       []RecipeTool       `gorm:"constraint:OnDelete:CASCADE" json:"tools"`
	Steps       []RecipeStep       `gorm:"constraint:OnDelete:CASCADE" json:"steps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeIngredient: Línea de receta. Amount va en la unidad almacenada del
// ingrediente (Ingredient.Unit), no en su unidad base.
type RecipeIngredient struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	RecipeID     uint    `gorm:"index;not null" json:"recipe_id"`
	Position     int     `gorm:"not null" json:"position"`
	IngredientID uint    `gorm:"index;not null" json:"ingredient_id"`
	Amount       float64 `gorm:"not null" json:"amount"`
}

// RecipeTool: Uso de herramienta dentro de la receta. UsagePercentage solo aplica
// (y es obligatorio, en (0,100]) cuando Usage = partial.
type RecipeTool struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RecipeID        uint      `gorm:"index;not null" json:"recipe_id"`
	Position        int       `gorm:"not null" json:"position"`
	ToolID          uint      `gorm:"index;not null" json:"tool_id"`
	Usage           ToolUsage `gorm:"size:20;not null" json:"usage"`
	UsagePercentage *float64  `json:"usage_percentage"`
}

type RecipeStep struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"index;not null" json:"recipe_id"`
	Position    int    `gorm:"not null" json:"position"`
	Description string `gorm:"size:500;not null" json:"description"`
}
