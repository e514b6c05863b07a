package recipes

import (
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RecipeIngredientRequest struct {
	IngredientID uint    `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
}

type RecipeToolRequest struct {
	ToolID          uint             `json:"tool_id"`
	Usage           models.ToolUsage `json:"usage"`
	UsagePercentage *float64         `json:"usage_percentage"`
}

type CreateRecipeRequest struct {
	Name         string                    `json:"name"`
	BatchSize    int                       `json:"batch_size"`
	SellingPrice float64                   `json:"selling_price"`
	Available    *bool                     `json:"available"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients"`
	Tools        []RecipeToolRequest       `json:"tools"`
	Steps        []string                  `json:"steps"`
}

type RecipeResponse struct {
	ID           uint                      `json:"id"`
	Name         string                    `json:"name"`
	BatchSize    int                       `json:"batch_size"`
	SellingPrice float64                   `json:"selling_price"`
	Available    bool                      `json:"available"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients"`
	Tools        []RecipeToolRequest       `json:"tools"`
	Steps        []string                  `json:"steps"`
}

func toResponse(r models.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		BatchSize:    r.BatchSize,
		SellingPrice: r.SellingPrice,
		Available:    r.Available,
		Ingredients:  make([]RecipeIngredientRequest, 0, len(r.Ingredients)),
		Tools:        make([]RecipeToolRequest, 0, len(r.Tools)),
		Steps:        make([]string, 0, len(r.Steps)),
	}
	for _, line := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientRequest{IngredientID: line.IngredientID, Amount: line.Amount})
	}
	for _, usage := range r.Tools {
		resp.Tools = append(resp.Tools, RecipeToolRequest{ToolID: usage.ToolID, Usage: usage.Usage, UsagePercentage: usage.UsagePercentage})
	}
	for _, step := range r.Steps {
		resp.Steps = append(resp.Steps, step.Description)
	}
	return resp
}

// validateRecipeBody revisa las invariantes que el motor de costos asume:
// batch_size > 0, líneas con cantidad positiva, uso parcial con porcentaje en (0,100].
func validateRecipeBody(body *CreateRecipeRequest) error {
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
	}
	if body.BatchSize <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "batch_size debe ser mayor a 0")
	}
	if body.SellingPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "El precio de venta no puede ser negativo")
	}
	for _, line := range body.Ingredients {
		if line.IngredientID == 0 || line.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cada línea de ingrediente requiere ingredient_id y amount > 0")
		}
	}
	for _, usage := range body.Tools {
		if usage.ToolID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cada uso de herramienta requiere tool_id")
		}
		switch usage.Usage {
		case models.ToolUsageFull, models.ToolUsageDepreciated:
		case models.ToolUsagePartial:
			if usage.UsagePercentage == nil || *usage.UsagePercentage <= 0 || *usage.UsagePercentage > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "El uso parcial requiere usage_percentage en (0,100]")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Uso de herramienta inválido (full/partial/depreciated)")
		}
	}
	return nil
}

func buildChildren(recipe *models.Recipe, body CreateRecipeRequest) {
	recipe.Ingredients = recipe.Ingredients[:0]
	for i, line := range body.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Position:     i,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	recipe.Tools = recipe.Tools[:0]
	for i, usage := range body.Tools {
		pct := usage.UsagePercentage
		if usage.Usage != models.ToolUsagePartial {
			pct = nil // el porcentaje solo tiene sentido en uso parcial
		}
		recipe.Tools = append(recipe.Tools, models.RecipeTool{
			Position:        i,
			ToolID:          usage.ToolID,
			Usage:           usage.Usage,
			UsagePercentage: pct,
		})
	}
	recipe.Steps = recipe.Steps[:0]
	for i, step := range body.Steps {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{
			Position:    i,
			Description: strings.TrimSpace(step),
		})
	}
}

func loadRecipe(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := database.DB.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Tools", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GET /api/recetas
func ListRecipesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Recipe{}).
			Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Preload("Tools", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })

		if c.Query("available") == "true" {
			dbq = dbq.Where("available = ?", true)
		}

		var recipes []models.Recipe
		if err := dbq.Order("name asc").Find(&recipes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las recetas")
		}

		res := make([]RecipeResponse, 0, len(recipes))
		for _, r := range recipes {
			res = append(res, toResponse(r))
		}
		return c.JSON(res)
	}
}

// GET /api/recetas/:id
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, err := loadRecipe(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}
		return c.JSON(toResponse(*recipe))
	}
}

// POST /api/admin/recetas (solo admin)
func CreateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if err := validateRecipeBody(&body); err != nil {
			return err
		}

		var existing models.Recipe
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe una receta con ese nombre")
		}

		recipe := models.Recipe{
			Name:         body.Name,
			BatchSize:    body.BatchSize,
			SellingPrice: body.SellingPrice,
			Available:    true,
		}
		if body.Available != nil {
			recipe.Available = *body.Available
		}
		buildChildren(&recipe, body)

		if err := database.DB.Create(&recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la receta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "recipe",
			EntityID:    recipe.ID,
			Action:      models.AuditActionCreate,
			Description: "Receta creada: " + recipe.Name,
			After:       recipe,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(recipe))
	}
}

// PUT /api/admin/recetas/:id
// Reemplaza líneas, usos y pasos completos; el frontend siempre manda la receta entera.
func UpdateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, err := loadRecipe(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}
		before := *recipe

		var body CreateRecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if err := validateRecipeBody(&body); err != nil {
			return err
		}

		recipe.Name = body.Name
		recipe.BatchSize = body.BatchSize
		recipe.SellingPrice = body.SellingPrice
		if body.Available != nil {
			recipe.Available = *body.Available
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// Hijos viejos fuera, hijos nuevos dentro
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTool{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStep{}).Error; err != nil {
				return err
			}
			buildChildren(recipe, body)
			return tx.Save(recipe).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la receta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "recipe",
			EntityID:    recipe.ID,
			Action:      models.AuditActionUpdate,
			Description: "Receta actualizada: " + recipe.Name,
			Before:      before,
			After:       recipe,
		})

		return c.JSON(toResponse(*recipe))
	}
}

// DELETE /api/admin/recetas/:id
func DeleteRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipe, err := loadRecipe(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Receta no encontrada")
		}

		if err := database.DB.Select("Ingredients", "Tools", "Steps").Delete(recipe).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la receta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "recipe",
			EntityID:    recipe.ID,
			Action:      models.AuditActionDelete,
			Description: "Receta eliminada: " + recipe.Name,
			Before:      recipe,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
