package production

import (
	"errors"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionRequest struct {
	RecipeID   uint   `json:"recipe_id"`
	BatchCount int    `json:"batch_count"`
	Date       string `json:"date"` // "2026-01-15"; vacío = hoy
}

type ProductionRecordResponse struct {
	ID            uint   `json:"id"`
	Folio         string `json:"folio"`
	RecipeID      uint   `json:"recipe_id"`
	RecipeName    string `json:"recipe_name"`
	BatchCount    int    `json:"batch_count"`
	TotalProduced int    `json:"total_produced"`
	Date          string `json:"date"`
}

func loadRecipeWithLines(tx *gorm.DB, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func snapshotCatalogs(tx *gorm.DB, lock bool) (map[uint]models.Ingredient, map[uint]models.InventoryItem, error) {
	var ings []models.Ingredient
	if err := tx.Find(&ings).Error; err != nil {
		return nil, nil, err
	}

	stockQuery := tx
	if lock {
		// Bloqueo de fila: dos confirmaciones concurrentes sobre el mismo
		// ingrediente se serializan y la segunda ve el stock ya descontado.
		stockQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var items []models.InventoryItem
	if err := stockQuery.Find(&items).Error; err != nil {
		return nil, nil, err
	}

	ingsByID := make(map[uint]models.Ingredient, len(ings))
	for _, ing := range ings {
		ingsByID[ing.ID] = ing
	}
	stockByID := make(map[uint]models.InventoryItem, len(items))
	for _, item := range items {
		stockByID[item.IngredientID] = item
	}
	return ingsByID, stockByID, nil
}

// POST /api/producciones/verificar
// Solo verifica; no descuenta nada.
func VerifyProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.RecipeID == 0 || body.BatchCount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "recipe_id y batch_count > 0 son obligatorios")
		}

		recipe, err := loadRecipeWithLines(database.DB, body.RecipeID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}

		ingsByID, stockByID, err := snapshotCatalogs(database.DB, false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el inventario")
		}

		result, err := CheckFeasibility(*recipe, body.BatchCount, ingsByID, stockByID)
		if err != nil {
			if errors.Is(err, costing.ErrDataIntegrity) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo verificar la producción")
		}

		return c.JSON(result)
	}
}

// POST /api/producciones
// Verificación y descuento dentro de UNA transacción con bloqueo de filas de
// inventario. Así no existe la ventana verificar-luego-descontar entre dos
// confirmaciones concurrentes.
func ConfirmProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.RecipeID == 0 || body.BatchCount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "recipe_id y batch_count > 0 son obligatorios")
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
			}
			date = d
		}

		var record models.ProductionRecord
		var result FeasibilityResult

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			recipe, err := loadRecipeWithLines(tx, body.RecipeID)
			if err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
			}

			ingsByID, stockByID, err := snapshotCatalogs(tx, true)
			if err != nil {
				return err
			}

			result, err = CheckFeasibility(*recipe, body.BatchCount, ingsByID, stockByID)
			if err != nil {
				if errors.Is(err, costing.ErrDataIntegrity) {
					return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
				}
				return err
			}
			if !result.Feasible {
				return fiber.NewError(fiber.StatusConflict, "Stock insuficiente para producir")
			}

			// Descuento: misma cantidad que calculó la verificación, piso en 0
			for _, req := range result.Requirements {
				item := stockByID[req.IngredientID]
				newStock := item.CurrentStock - req.Amount
				if newStock < 0 {
					newStock = 0
				}
				err := tx.Model(&models.InventoryItem{}).
					Where("id = ?", item.ID).
					Updates(map[string]any{
						"current_stock": newStock,
						"last_updated":  time.Now(),
					}).Error
				if err != nil {
					return err
				}
			}

			record = models.ProductionRecord{
				Folio:         uuid.NewString(),
				RecipeID:      recipe.ID,
				BatchCount:    body.BatchCount,
				TotalProduced: body.BatchCount * recipe.BatchSize,
				Date:          date,
			}
			return tx.Create(&record).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la producción")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "production_record",
			EntityID:    record.ID,
			Action:      models.AuditActionCreate,
			Description: "Producción registrada, folio " + record.Folio,
			After:       record,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"record":   record,
			"warnings": result.Warnings,
		})
	}
}

// GET /api/producciones
func ListProductionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.ProductionRecord
		if err := database.DB.Preload("Recipe").Order("date DESC, id DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las producciones")
		}

		res := make([]ProductionRecordResponse, 0, len(records))
		for _, r := range records {
			res = append(res, ProductionRecordResponse{
				ID:            r.ID,
				Folio:         r.Folio,
				RecipeID:      r.RecipeID,
				RecipeName:    r.Recipe.Name,
				BatchCount:    r.BatchCount,
				TotalProduced: r.TotalProduced,
				Date:          r.Date.Format("2006-01-02"),
			})
		}
		return c.JSON(res)
	}
}
