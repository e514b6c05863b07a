package costing

import (
	"fmt"

	"panaderia-backend/internal/models"
)

// ToolCost: variante etiquetada del modelo de costo de herramienta. El registro
// almacenado (Tool) mezcla campos de consumible y de amortizado; la variante se
// construye validando, así un "equipo" sin datos de inversión no puede llegar
// al cálculo.
type ToolCost interface {
	isToolCost()
}

// Consumable: costo operativo directo, ya expresado por lote.
type Consumable struct {
	CostPerBatch float64
}

// Amortized: recuperación de inversión repartida en la vida útil (en lotes).
type Amortized struct {
	TotalInvestment float64
	RecoveryValue   float64
	TotalBatches    int
}

func (Consumable) isToolCost() {}
func (Amortized) isToolCost()  {}

// ToolCostVariant valida el registro almacenado y construye la variante.
func ToolCostVariant(tool models.Tool) (ToolCost, error) {
	if tool.Type == models.ToolTypeConsumible {
		if tool.Cost < 0 {
			return nil, fmt.Errorf("%w: cost negativo (herramienta %q)", ErrDataIntegrity, tool.Name)
		}
		return Consumable{CostPerBatch: tool.Cost}, nil
	}

	if tool.TotalBatches <= 0 {
		return nil, fmt.Errorf("%w: total_batches debe ser > 0 (herramienta %q)", ErrDataIntegrity, tool.Name)
	}
	if tool.TotalInvestment < tool.RecoveryValue {
		return nil, fmt.Errorf("%w: valor de rescate mayor a la inversión (herramienta %q)", ErrDataIntegrity, tool.Name)
	}
	return Amortized{
		TotalInvestment: tool.TotalInvestment,
		RecoveryValue:   tool.RecoveryValue,
		TotalBatches:    tool.TotalBatches,
	}, nil
}

// CostPerBatch: costo por lote de la variante. El amortizado se redondea a
// centavos porque así se presenta y se factura por lote.
func CostPerBatch(v ToolCost) float64 {
	switch t := v.(type) {
	case Consumable:
		return t.CostPerBatch
	case Amortized:
		return RoundMoney((t.TotalInvestment - t.RecoveryValue) / float64(t.TotalBatches))
	}
	return 0
}

// EffectiveRecipeCost aplica el modificador de uso de la receta:
// full = 100%, depreciated = 0%, partial = usage_percentage.
func EffectiveRecipeCost(v ToolCost, usage models.ToolUsage, usagePercentage *float64) (float64, error) {
	switch usage {
	case models.ToolUsageFull:
		return CostPerBatch(v), nil
	case models.ToolUsageDepreciated:
		return 0, nil
	case models.ToolUsagePartial:
		if usagePercentage == nil || *usagePercentage <= 0 || *usagePercentage > 100 {
			return 0, fmt.Errorf("%w: usage_percentage debe estar en (0,100] para uso parcial", ErrDataIntegrity)
		}
		return CostPerBatch(v) * *usagePercentage / 100, nil
	}
	return 0, fmt.Errorf("%w: uso de herramienta desconocido %q", ErrDataIntegrity, usage)
}
