package costing

import (
	"fmt"

	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"
)

// CostPerBaseUnit: costo por una unidad de la unidad base del ingrediente.
//
// Unidad estándar: price / amount (ej: $25 por 1 kg → 25 $/kg).
// Unidad contenedor: price / contains_amount, en la unidad del contenido
// (ej: $40 la bolsa de 1000 g → 0.04 $/g). En esa rama Amount/Unit describen el
// envase y no entran al cálculo.
func CostPerBaseUnit(ing models.Ingredient) (float64, error) {
	if units.IsContainer(ing.Unit) {
		if ing.ContainsAmount == nil || *ing.ContainsAmount <= 0 {
			return 0, fmt.Errorf("%w: contains_amount debe ser > 0 (ingrediente %q)", ErrDataIntegrity, ing.Name)
		}
		if !units.IsStandard(ing.ContainsUnit) {
			return 0, fmt.Errorf("%w: contains_unit %q no es una unidad estándar (ingrediente %q)", ErrDataIntegrity, ing.ContainsUnit, ing.Name)
		}
		return ing.Price / *ing.ContainsAmount, nil
	}

	if !units.IsKnown(ing.Unit) {
		return 0, fmt.Errorf("%w: %q (ingrediente %q)", units.ErrUnknownUnit, ing.Unit, ing.Name)
	}
	if ing.Amount <= 0 {
		return 0, fmt.Errorf("%w: amount debe ser > 0 (ingrediente %q)", ErrDataIntegrity, ing.Name)
	}
	return ing.Price / ing.Amount, nil
}
