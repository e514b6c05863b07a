package models

import "time"

// Ingredient: Materia prima del catálogo. El par (Amount, Price) indica cuánto
// cuesta comprar Amount en Unit (ej: 25.00 por 1 kg de harina).
//
// Si Unit es una unidad contenedor (bolsa, paquete, sobre...), ContainsAmount y
// ContainsUnit declaran el contenido real del envase; en ese caso Amount/Unit
// describen el envase y el costo unitario sale del contenido (ver costing).
type Ingredient struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:100;not null;unique" json:"name"`
	Unit          string  `gorm:"size:20;not null" json:"unit"` // g, kg, ml, l, unidad, docena, bolsa...
	Amount        float64 `gorm:"not null" json:"amount"`       // cantidad que compra Price
	Price         float64 `gorm:"not null" json:"price"`
	MinAmount     float64 `json:"min_amount"` // umbral de recompra
	MinAmountUnit string  `gorm:"size:20" json:"min_amount_unit"`

	// Solo para unidades contenedor
	ContainsAmount *float64 `json:"contains_amount"`
	ContainsUnit   string   `gorm:"size:20" json:"contains_unit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
