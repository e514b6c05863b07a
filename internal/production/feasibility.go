package production

import (
	"fmt"

	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"
)

type WarningKind string

const (
	// La receta referencia un ingrediente que el catálogo no trae. No bloquea
	// la producción, solo se avisa.
	WarnMissingIngredient WarningKind = "ingrediente_faltante"
	// La conversión de unidades falló y se compararon valores crudos. Precisión
	// degradada: 2 tbsp contra 2 g se tratan como iguales. Clase propia para
	// que el frontend pueda distinguirla de un faltante normal.
	WarnUnitFallback WarningKind = "comparacion_sin_conversion"
)

type Warning struct {
	Kind         WarningKind `json:"kind"`
	IngredientID uint        `json:"ingredient_id"`
	Detail       string      `json:"detail"`
}

type Deficit struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Missing        float64 `json:"missing"`
	Unit           string  `json:"unit"`
}

// Requirement: cantidad requerida por ingrediente, ya expresada en la unidad
// del inventario. Es lo que la confirmación descuenta del stock.
type Requirement struct {
	IngredientID uint    `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

type FeasibilityResult struct {
	Feasible     bool          `json:"feasible"`
	Deficits     []Deficit     `json:"deficits"`
	Warnings     []Warning     `json:"warnings"`
	Requirements []Requirement `json:"requirements"`
}

// CheckFeasibility determina si el stock actual alcanza para producir
// batchCount lotes de la receta. Pura: no toca el inventario; el descuento es
// un paso separado que corre el handler dentro de una transacción.
func CheckFeasibility(recipe models.Recipe, batchCount int, ingredients map[uint]models.Ingredient, stock map[uint]models.InventoryItem) (FeasibilityResult, error) {
	if batchCount <= 0 {
		return FeasibilityResult{}, fmt.Errorf("%w: batch_count debe ser > 0", costing.ErrDataIntegrity)
	}

	result := FeasibilityResult{}

	for _, line := range recipe.Ingredients {
		ing, ok := ingredients[line.IngredientID]
		if !ok {
			result.Warnings = append(result.Warnings, Warning{
				Kind:         WarnMissingIngredient,
				IngredientID: line.IngredientID,
				Detail:       fmt.Sprintf("la receta referencia el ingrediente %d y no está en el catálogo", line.IngredientID),
			})
			continue
		}

		required := line.Amount * float64(batchCount) // en la unidad de receta del ingrediente

		item, ok := stock[line.IngredientID]
		if !ok {
			// Sin fila de inventario no hay stock: déficit completo.
			result.Deficits = append(result.Deficits, Deficit{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Missing:        required,
				Unit:           ing.Unit,
			})
			continue
		}

		requiredInStockUnit, warn := convertRequired(required, ing, item)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
		}

		result.Requirements = append(result.Requirements, Requirement{
			IngredientID: ing.ID,
			Amount:       requiredInStockUnit,
			Unit:         item.Unit,
		})

		if missing := requiredInStockUnit - item.CurrentStock; missing > 0 {
			result.Deficits = append(result.Deficits, Deficit{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Missing:        missing,
				Unit:           item.Unit,
			})
		}
	}

	result.Feasible = len(result.Deficits) == 0
	return result, nil
}

// convertRequired expresa la cantidad requerida en la unidad del inventario.
// Si la conversión no es posible se comparan valores crudos con advertencia
// explícita; nunca en silencio.
func convertRequired(required float64, ing models.Ingredient, item models.InventoryItem) (float64, *Warning) {
	if item.Unit == ing.Unit {
		return required, nil
	}

	// Primero a unidad estándar (resuelve contenedores vía el ingrediente),
	// luego a la unidad del inventario.
	std, err := units.ConvertToStandard(required, ing.Unit, &ing)
	if err == nil {
		if std.Unit == item.Unit {
			return std.Value, nil
		}
		if converted, err := units.Convert(std, item.Unit); err == nil {
			return converted.Value, nil
		}
	}

	return required, &Warning{
		Kind:         WarnUnitFallback,
		IngredientID: ing.ID,
		Detail:       fmt.Sprintf("no se pudo convertir %s → %s para %q; se comparan valores crudos", ing.Unit, item.Unit, ing.Name),
	}
}
