package inventario

import (
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"

	"github.com/gofiber/fiber/v2"
)

type InventoryItemResponse struct {
	ID             uint    `json:"id"`
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	CurrentStock   float64 `json:"current_stock"`
	Unit           string  `json:"unit"`
	MinimumStock   float64 `json:"minimum_stock"`
	LastUpdated    string  `json:"last_updated"`
}

type SetStockRequest struct {
	CurrentStock *float64 `json:"current_stock"`
	Unit         *string  `json:"unit"`
	MinimumStock *float64 `json:"minimum_stock"`
}

func toResponse(item models.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:             item.ID,
		IngredientID:   item.IngredientID,
		IngredientName: item.Ingredient.Name,
		CurrentStock:   item.CurrentStock,
		Unit:           item.Unit,
		MinimumStock:   item.MinimumStock,
		LastUpdated:    item.LastUpdated.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/inventario
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.InventoryItem
		if err := database.DB.Preload("Ingredient").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el inventario")
		}

		res := make([]InventoryItemResponse, 0, len(items))
		for _, item := range items {
			res = append(res, toResponse(item))
		}
		return c.JSON(res)
	}
}

// PUT /api/inventario/:ingredientId
// Ajuste manual de existencias: fija el valor, no suma. El descuento por
// producción va por POST /api/producciones, nunca por aquí.
func SetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ingredientID := c.Params("ingredientId")

		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", ingredientID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
		}

		var body SetStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.CurrentStock != nil && *body.CurrentStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El stock no puede ser negativo")
		}
		if body.Unit != nil && !units.IsKnown(*body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "Unidad desconocida: "+*body.Unit)
		}

		var item models.InventoryItem
		err := database.DB.Where("ingredient_id = ?", ing.ID).First(&item).Error
		isNew := err != nil
		if isNew {
			item = models.InventoryItem{
				IngredientID: ing.ID,
				Unit:         ing.Unit,
			}
		}
		before := item

		if body.CurrentStock != nil {
			item.CurrentStock = *body.CurrentStock
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.MinimumStock != nil {
			item.MinimumStock = *body.MinimumStock
		}
		item.LastUpdated = time.Now()

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el inventario")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		action := models.AuditActionUpdate
		if isNew {
			action = models.AuditActionCreate
		}
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "inventory_item",
			EntityID:    item.ID,
			Action:      action,
			Description: "Ajuste manual de stock: " + ing.Name,
			Before:      before,
			After:       item,
		})

		item.Ingredient = ing
		return c.JSON(toResponse(item))
	}
}

// GET /api/inventario/alertas
// Ingredientes cuyo stock actual está en o por debajo del mínimo.
func LowStockAlertsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.InventoryItem
		err := database.DB.Preload("Ingredient").
			Where("minimum_stock > 0 AND current_stock <= minimum_stock").
			Find(&items).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron consultar las alertas")
		}

		res := make([]InventoryItemResponse, 0, len(items))
		for _, item := range items {
			res = append(res, toResponse(item))
		}
		return c.JSON(res)
	}
}
