package models

import "time"

type ToolType string

const (
	ToolTypeConsumible    ToolType = "consumible"
	ToolTypeHerramienta   ToolType = "herramienta"
	ToolTypeEquipo        ToolType = "equipo"
	ToolTypeEspecializado ToolType = "especializado"
)

// IsAmortized: todo lo que no es consumible se amortiza por lotes.
func (t ToolType) IsAmortized() bool {
	return t != ToolTypeConsumible
}

// Tool: Herramienta o equipo de producción.
//
// Consumibles: Cost es el costo operativo directo por lote.
// Amortizados (herramienta/equipo/especializado): TotalInvestment, RecoveryValue y
// TotalBatches se derivan de la categoría (ver tools.RecomputeAmortization) y el
// costo por lote sale de (TotalInvestment - RecoveryValue) / TotalBatches.
type Tool struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Type     ToolType `gorm:"size:20;not null" json:"type"`
	Category string   `gorm:"size:50;not null" json:"category"` // horno, equipo_mayor, utensilios...

	// Consumibles
	Cost float64 `json:"cost"` // costo directo por lote

	// Amortizados
	TotalInvestment float64 `json:"total_investment"`
	RecoveryValue   float64 `json:"recovery_value"` // valor de rescate
	TotalBatches    int     `json:"total_batches"`  // vida útil expresada en lotes

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
