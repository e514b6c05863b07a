package costing

import (
	"fmt"
	"math"

	"panaderia-backend/internal/models"
)

// RecipeCostReport: resultado agregado de costear una receta.
//
// ProfitPercentage y BatchGoal son punteros: nil significa "indefinido"
// (precio de venta en cero), nunca NaN ni Inf hacia la presentación.
// Las referencias rotas (ingrediente/herramienta inexistente) se saltan pero
// quedan reportadas para que el caller pueda avisar al usuario.
type RecipeCostReport struct {
	TotalIngredientCost float64  `json:"total_ingredient_cost"`
	TotalToolCost       float64  `json:"total_tool_cost"`
	TotalCost           float64  `json:"total_cost"`
	CostPerItem         float64  `json:"cost_per_item"`
	Profit              float64  `json:"profit"`
	ProfitPercentage    *float64 `json:"profit_percentage"`
	BatchGoal           *int     `json:"batch_goal"` // lotes para recuperar el costo de ingredientes

	MissingIngredientIDs []uint `json:"missing_ingredient_ids"`
	MissingToolIDs       []uint `json:"missing_tool_ids"`
}

// TotalIngredientCost suma costo-base × cantidad por cada línea de la receta.
// Devuelve además los IDs de ingredientes que la receta referencia pero el
// catálogo no trae. Un error de integridad en un ingrediente aborta la suma:
// mejor no mostrar número que mostrar uno inventado.
func TotalIngredientCost(recipe models.Recipe, ingredients map[uint]models.Ingredient) (float64, []uint, error) {
	total := 0.0
	var missing []uint
	for _, line := range recipe.Ingredients {
		ing, ok := ingredients[line.IngredientID]
		if !ok {
			missing = append(missing, line.IngredientID)
			continue
		}
		unitCost, err := CostPerBaseUnit(ing)
		if err != nil {
			return 0, missing, err
		}
		total += unitCost * line.Amount
	}
	return total, missing, nil
}

// TotalToolCost suma el costo efectivo por lote de cada uso de herramienta.
func TotalToolCost(recipe models.Recipe, tools map[uint]models.Tool) (float64, []uint, error) {
	total := 0.0
	var missing []uint
	for _, usage := range recipe.Tools {
		tool, ok := tools[usage.ToolID]
		if !ok {
			missing = append(missing, usage.ToolID)
			continue
		}
		variant, err := ToolCostVariant(tool)
		if err != nil {
			return 0, missing, err
		}
		cost, err := EffectiveRecipeCost(variant, usage.Usage, usage.UsagePercentage)
		if err != nil {
			return 0, missing, err
		}
		total += cost
	}
	return total, missing, nil
}

// ComputeRecipeCost: agregación completa de una receta. Los catálogos llegan
// como mapas id→registro; el motor no consulta nada ambiente.
func ComputeRecipeCost(recipe models.Recipe, ingredients map[uint]models.Ingredient, tools map[uint]models.Tool) (RecipeCostReport, error) {
	if recipe.BatchSize <= 0 {
		return RecipeCostReport{}, fmt.Errorf("%w: batch_size debe ser > 0 (receta %q)", ErrDataIntegrity, recipe.Name)
	}

	ingCost, missingIngs, err := TotalIngredientCost(recipe, ingredients)
	if err != nil {
		return RecipeCostReport{}, err
	}
	toolCost, missingTools, err := TotalToolCost(recipe, tools)
	if err != nil {
		return RecipeCostReport{}, err
	}

	totalCost := ingCost + toolCost
	costPerItem := totalCost / float64(recipe.BatchSize)

	report := RecipeCostReport{
		TotalIngredientCost:  ingCost,
		TotalToolCost:        toolCost,
		TotalCost:            totalCost,
		CostPerItem:          costPerItem,
		Profit:               recipe.SellingPrice - costPerItem,
		MissingIngredientIDs: missingIngs,
		MissingToolIDs:       missingTools,
	}

	if recipe.SellingPrice != 0 {
		pct := (recipe.SellingPrice - costPerItem) / recipe.SellingPrice * 100
		report.ProfitPercentage = &pct
	}
	report.BatchGoal = BatchGoal(ingCost, recipe.SellingPrice, recipe.BatchSize)

	return report, nil
}

// BatchGoal (meta de lotes): mínimo entero de lotes cuyo ingreso recupera el
// costo de ingredientes de un lote. nil cuando el ingreso por lote es cero.
func BatchGoal(totalIngredientCost, sellingPrice float64, batchSize int) *int {
	revenuePerBatch := sellingPrice * float64(batchSize)
	if revenuePerBatch <= 0 {
		return nil
	}
	goal := int(math.Ceil(totalIngredientCost / revenuePerBatch))
	return &goal
}

// PriceFromMargin: inverso precio-desde-margen. margin va en [0, 100);
// 100 es asíntota (precio infinito) y se rechaza en vez de calcularse.
func PriceFromMargin(costPerItem, margin float64) (float64, error) {
	if margin < 0 || margin >= 100 {
		return 0, fmt.Errorf("%w: %.2f (debe estar en [0, 100))", ErrMarginOutOfRange, margin)
	}
	return costPerItem / (1 - margin/100), nil
}
