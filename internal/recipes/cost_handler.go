package recipes

import (
	"errors"
	"fmt"
	"log"

	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type RecipeCostResponse struct {
	RecipeID            uint     `json:"recipe_id"`
	RecipeName          string   `json:"recipe_name"`
	TotalIngredientCost float64  `json:"total_ingredient_cost"`
	TotalToolCost       float64  `json:"total_tool_cost"`
	TotalCost           float64  `json:"total_cost"`
	CostPerItem         float64  `json:"cost_per_item"`
	Profit              float64  `json:"profit"`
	ProfitPercentage    *float64 `json:"profit_percentage"`
	BatchGoal           *int     `json:"batch_goal"`
	MissingIngredients  int      `json:"missing_ingredients"`
	MissingTools        int      `json:"missing_tools"`
}

type SuggestedPriceRequest struct {
	Margin float64 `json:"margin"` // porcentaje deseado, [0, 100)
}

// loadCatalogs trae los catálogos completos como mapas id→registro. El motor es
// puro y no consulta la base; aquí es donde el mundo exterior le arma la foto.
func loadCatalogs() (map[uint]models.Ingredient, map[uint]models.Tool, error) {
	var ings []models.Ingredient
	if err := database.DB.Find(&ings).Error; err != nil {
		return nil, nil, err
	}
	var tools []models.Tool
	if err := database.DB.Find(&tools).Error; err != nil {
		return nil, nil, err
	}

	ingsByID := make(map[uint]models.Ingredient, len(ings))
	for _, ing := range ings {
		ingsByID[ing.ID] = ing
	}
	toolsByID := make(map[uint]models.Tool, len(tools))
	for _, tool := range tools {
		toolsByID[tool.ID] = tool
	}
	return ingsByID, toolsByID, nil
}

// engineError traduce los errores tipados del motor a HTTP. Integridad de
// datos y unidades rotas → 422: el frontend muestra un guion, no un número.
func engineError(err error) *fiber.Error {
	if errors.Is(err, costing.ErrDataIntegrity) ||
		errors.Is(err, costing.ErrMarginOutOfRange) ||
		errors.Is(err, units.ErrUnknownUnit) ||
		errors.Is(err, units.ErrUnsupportedConversion) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el costo")
}

func computeReportFor(id string) (*models.Recipe, costing.RecipeCostReport, error) {
	recipe, err := loadRecipe(id)
	if err != nil {
		return nil, costing.RecipeCostReport{}, fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
	}

	ingsByID, toolsByID, err := loadCatalogs()
	if err != nil {
		return nil, costing.RecipeCostReport{}, fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los catálogos")
	}

	report, err := costing.ComputeRecipeCost(*recipe, ingsByID, toolsByID)
	if err != nil {
		return nil, costing.RecipeCostReport{}, engineError(err)
	}

	// Referencias rotas no bloquean el reporte, pero sí se avisan
	if len(report.MissingIngredientIDs) > 0 || len(report.MissingToolIDs) > 0 {
		log.Printf("Receta %q: %d ingredientes y %d herramientas referenciados no existen en catálogo",
			recipe.Name, len(report.MissingIngredientIDs), len(report.MissingToolIDs))
	}
	return recipe, report, nil
}

// GET /api/recetas/:id/costos
func RecipeCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, report, err := computeReportFor(c.Params("id"))
		if err != nil {
			return err
		}

		// El redondeo a centavos ocurre solo aquí, sobre los totales ya sumados
		resp := RecipeCostResponse{
			RecipeID:            recipe.ID,
			RecipeName:          recipe.Name,
			TotalIngredientCost: costing.RoundMoney(report.TotalIngredientCost),
			TotalToolCost:       costing.RoundMoney(report.TotalToolCost),
			TotalCost:           costing.RoundMoney(report.TotalCost),
			CostPerItem:         costing.RoundMoney(report.CostPerItem),
			Profit:              costing.RoundMoney(report.Profit),
			ProfitPercentage:    report.ProfitPercentage,
			BatchGoal:           report.BatchGoal,
			MissingIngredients:  len(report.MissingIngredientIDs),
			MissingTools:        len(report.MissingToolIDs),
		}
		return c.JSON(resp)
	}
}

// POST /api/recetas/:id/precio-sugerido
func SuggestedPriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SuggestedPriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		_, report, err := computeReportFor(c.Params("id"))
		if err != nil {
			return err
		}

		price, perr := costing.PriceFromMargin(report.CostPerItem, body.Margin)
		if perr != nil {
			return engineError(perr)
		}

		return c.JSON(fiber.Map{
			"margin":        body.Margin,
			"cost_per_item": costing.RoundMoney(report.CostPerItem),
			"selling_price": costing.RoundMoney(price),
		})
	}
}

// GET /api/recetas/:id/costos/export
// Exporta el desglose de costos de la receta a Excel.
func ExportRecipeCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, report, err := computeReportFor(c.Params("id"))
		if err != nil {
			return err
		}

		ingsByID, toolsByID, cerr := loadCatalogs()
		if cerr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los catálogos")
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Costos"
		f.SetSheetName("Sheet1", sheet)

		f.SetCellValue(sheet, "A1", "Receta")
		f.SetCellValue(sheet, "B1", recipe.Name)
		f.SetCellValue(sheet, "A2", "Lote (piezas)")
		f.SetCellValue(sheet, "B2", recipe.BatchSize)

		f.SetCellValue(sheet, "A4", "Ingrediente")
		f.SetCellValue(sheet, "B4", "Cantidad")
		f.SetCellValue(sheet, "C4", "Unidad")
		f.SetCellValue(sheet, "D4", "Costo")

		row := 5
		for _, line := range recipe.Ingredients {
			ing, ok := ingsByID[line.IngredientID]
			if !ok {
				continue
			}
			unitCost, uerr := costing.CostPerBaseUnit(ing)
			if uerr != nil {
				continue
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ing.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), line.Amount)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ing.Unit)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), costing.RoundMoney(unitCost*line.Amount))
			row++
		}

		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Herramienta")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Uso")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Costo")
		row++
		for _, usage := range recipe.Tools {
			tool, ok := toolsByID[usage.ToolID]
			if !ok {
				continue
			}
			variant, verr := costing.ToolCostVariant(tool)
			if verr != nil {
				continue
			}
			cost, cerr := costing.EffectiveRecipeCost(variant, usage.Usage, usage.UsagePercentage)
			if cerr != nil {
				continue
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tool.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(usage.Usage))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), costing.RoundMoney(cost))
			row++
		}

		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Costo total del lote")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), costing.RoundMoney(report.TotalCost))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Costo por pieza")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), costing.RoundMoney(report.CostPerItem))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Ganancia por pieza")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), costing.RoundMoney(report.Profit))

		buf, werr := f.WriteToBuffer()
		if werr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=costos-%s.xlsx", recipe.Name))
		return c.SendStream(buf)
	}
}
