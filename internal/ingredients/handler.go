package ingredients

import (
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"

	"github.com/gofiber/fiber/v2"
)

type IngredientResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Unit           string   `json:"unit"`
	Amount         float64  `json:"amount"`
	Price          float64  `json:"price"`
	MinAmount      float64  `json:"min_amount"`
	MinAmountUnit  string   `json:"min_amount_unit"`
	ContainsAmount *float64 `json:"contains_amount"`
	ContainsUnit   string   `json:"contains_unit"`
	// nil cuando el registro no da para calcularlo (ver costing.CostPerBaseUnit);
	// el frontend muestra un guion, nunca un número inventado.
	CostPerBaseUnit *float64 `json:"cost_per_base_unit"`
}

type CreateIngredientRequest struct {
	Name           string   `json:"name"`
	Unit           string   `json:"unit"`
	Amount         float64  `json:"amount"`
	Price          float64  `json:"price"`
	MinAmount      float64  `json:"min_amount"`
	MinAmountUnit  string   `json:"min_amount_unit"`
	ContainsAmount *float64 `json:"contains_amount"`
	ContainsUnit   string   `json:"contains_unit"`
}

type UpdateIngredientRequest struct {
	Name           *string  `json:"name"`
	Unit           *string  `json:"unit"`
	Amount         *float64 `json:"amount"`
	Price          *float64 `json:"price"`
	MinAmount      *float64 `json:"min_amount"`
	MinAmountUnit  *string  `json:"min_amount_unit"`
	ContainsAmount *float64 `json:"contains_amount"`
	ContainsUnit   *string  `json:"contains_unit"`
}

func toResponse(ing models.Ingredient) IngredientResponse {
	resp := IngredientResponse{
		ID:             ing.ID,
		Name:           ing.Name,
		Unit:           ing.Unit,
		Amount:         ing.Amount,
		Price:          ing.Price,
		MinAmount:      ing.MinAmount,
		MinAmountUnit:  ing.MinAmountUnit,
		ContainsAmount: ing.ContainsAmount,
		ContainsUnit:   ing.ContainsUnit,
	}
	if cost, err := costing.CostPerBaseUnit(ing); err == nil {
		resp.CostPerBaseUnit = &cost
	}
	return resp
}

// validateIngredient aplica las invariantes del catálogo antes de tocar la base:
// unidad conocida, amount > 0, y si la unidad es contenedor, contenido declarado
// en una unidad estándar.
func validateIngredient(ing *models.Ingredient) error {
	ing.Name = strings.TrimSpace(ing.Name)
	ing.Unit = strings.TrimSpace(ing.Unit)

	if ing.Name == "" || ing.Unit == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Nombre y unidad son obligatorios")
	}
	if !units.IsKnown(ing.Unit) {
		return fiber.NewError(fiber.StatusBadRequest, "Unidad desconocida: "+ing.Unit)
	}
	if ing.Price < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
	}

	if units.IsContainer(ing.Unit) {
		if ing.ContainsAmount == nil || *ing.ContainsAmount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Las unidades contenedor requieren contains_amount > 0")
		}
		if !units.IsStandard(ing.ContainsUnit) {
			return fiber.NewError(fiber.StatusBadRequest, "contains_unit debe ser una unidad estándar (no contenedor)")
		}
	} else {
		if ing.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Amount debe ser mayor a 0")
		}
		ing.ContainsAmount = nil
		ing.ContainsUnit = ""
	}

	if ing.MinAmountUnit == "" {
		ing.MinAmountUnit = ing.Unit
	}
	return nil
}

// GET /api/ingredientes
func ListIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ings []models.Ingredient
		if err := database.DB.Order("name asc").Find(&ings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los ingredientes")
		}

		res := make([]IngredientResponse, 0, len(ings))
		for _, ing := range ings {
			res = append(res, toResponse(ing))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/ingredientes (solo admin)
func CreateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateIngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		ing := models.Ingredient{
			Name:           body.Name,
			Unit:           body.Unit,
			Amount:         body.Amount,
			Price:          body.Price,
			MinAmount:      body.MinAmount,
			MinAmountUnit:  body.MinAmountUnit,
			ContainsAmount: body.ContainsAmount,
			ContainsUnit:   body.ContainsUnit,
		}
		if err := validateIngredient(&ing); err != nil {
			return err
		}

		// Nombre único
		var existing models.Ingredient
		if err := database.DB.Where("name = ?", ing.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un ingrediente con ese nombre")
		}

		if err := database.DB.Create(&ing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el ingrediente")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ingredient",
			EntityID:    ing.ID,
			Action:      models.AuditActionCreate,
			Description: "Ingrediente creado: " + ing.Name,
			After:       ing,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(ing))
	}
}

// PUT /api/admin/ingredientes/:id
func UpdateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
		}
		before := ing

		var body UpdateIngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Name != nil {
			ing.Name = *body.Name
		}
		if body.Unit != nil {
			ing.Unit = *body.Unit
		}
		if body.Amount != nil {
			ing.Amount = *body.Amount
		}
		if body.Price != nil {
			ing.Price = *body.Price
		}
		if body.MinAmount != nil {
			ing.MinAmount = *body.MinAmount
		}
		if body.MinAmountUnit != nil {
			ing.MinAmountUnit = *body.MinAmountUnit
		}
		if body.ContainsAmount != nil {
			ing.ContainsAmount = body.ContainsAmount
		}
		if body.ContainsUnit != nil {
			ing.ContainsUnit = *body.ContainsUnit
		}

		if err := validateIngredient(&ing); err != nil {
			return err
		}

		if err := database.DB.Save(&ing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el ingrediente")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ingredient",
			EntityID:    ing.ID,
			Action:      models.AuditActionUpdate,
			Description: "Ingrediente actualizado: " + ing.Name,
			Before:      before,
			After:       ing,
		})

		return c.JSON(toResponse(ing))
	}
}

// DELETE /api/admin/ingredientes/:id
func DeleteIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ing models.Ingredient
		if err := database.DB.First(&ing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ingrediente no encontrado")
		}

		if err := database.DB.Delete(&ing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el ingrediente")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "ingredient",
			EntityID:    ing.ID,
			Action:      models.AuditActionDelete,
			Description: "Ingrediente eliminado: " + ing.Name,
			Before:      ing,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
