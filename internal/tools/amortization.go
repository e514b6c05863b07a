package tools

import (
	"fmt"

	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/models"
)

// Parámetros de amortización por categoría. La vida útil va expresada en lotes
// por año × años; el valor de rescate es una fracción fija de la inversión.
type categoryParams struct {
	BatchesPerYear int
	YearsLifespan  int
	RecoveryRate   float64
}

var amortizationByCategory = map[string]categoryParams{
	"horno":        {BatchesPerYear: 600, YearsLifespan: 10, RecoveryRate: 0.15},
	"equipo_mayor": {BatchesPerYear: 500, YearsLifespan: 8, RecoveryRate: 0.10},
	"equipo_menor": {BatchesPerYear: 400, YearsLifespan: 5, RecoveryRate: 0.05},
	"utensilios":   {BatchesPerYear: 300, YearsLifespan: 3, RecoveryRate: 0.00},
	"especializado": {BatchesPerYear: 200, YearsLifespan: 4, RecoveryRate: 0.10},
}

// KnownCategory indica si la categoría tiene parámetros de amortización.
func KnownCategory(category string) bool {
	_, ok := amortizationByCategory[category]
	return ok
}

// RecomputeAmortization recalcula TotalBatches y RecoveryValue a partir de la
// categoría y la inversión. Se invoca cada vez que cambia Category o
// TotalInvestment, no solo al crear: si no, el costo por lote queda obsoleto.
// Los consumibles no se tocan.
func RecomputeAmortization(tool *models.Tool) error {
	if tool.Type == models.ToolTypeConsumible {
		return nil
	}
	params, ok := amortizationByCategory[tool.Category]
	if !ok {
		return fmt.Errorf("%w: categoría desconocida %q (herramienta %q)", costing.ErrDataIntegrity, tool.Category, tool.Name)
	}
	if tool.TotalInvestment <= 0 {
		return fmt.Errorf("%w: total_investment debe ser > 0 (herramienta %q)", costing.ErrDataIntegrity, tool.Name)
	}
	tool.TotalBatches = params.BatchesPerYear * params.YearsLifespan
	tool.RecoveryValue = tool.TotalInvestment * params.RecoveryRate
	return nil
}
