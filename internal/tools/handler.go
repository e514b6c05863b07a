package tools

import (
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ToolResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Type            models.ToolType `json:"type"`
	Category        string          `json:"category"`
	Cost            float64         `json:"cost"`
	TotalInvestment float64         `json:"total_investment"`
	RecoveryValue   float64         `json:"recovery_value"`
	TotalBatches    int             `json:"total_batches"`
	CostPerBatch    *float64        `json:"cost_per_batch"` // nil si el registro es inconsistente
}

type CreateToolRequest struct {
	Name            string          `json:"name"`
	Type            models.ToolType `json:"type"`
	Category        string          `json:"category"`
	Cost            float64         `json:"cost"`
	TotalInvestment float64         `json:"total_investment"`
}

type UpdateToolRequest struct {
	Name            *string          `json:"name"`
	Type            *models.ToolType `json:"type"`
	Category        *string          `json:"category"`
	Cost            *float64         `json:"cost"`
	TotalInvestment *float64         `json:"total_investment"`
}

func toResponse(tool models.Tool) ToolResponse {
	resp := ToolResponse{
		ID:              tool.ID,
		Name:            tool.Name,
		Type:            tool.Type,
		Category:        tool.Category,
		Cost:            tool.Cost,
		TotalInvestment: tool.TotalInvestment,
		RecoveryValue:   tool.RecoveryValue,
		TotalBatches:    tool.TotalBatches,
	}
	if variant, err := costing.ToolCostVariant(tool); err == nil {
		cost := costing.CostPerBatch(variant)
		resp.CostPerBatch = &cost
	}
	return resp
}

func validToolType(t models.ToolType) bool {
	switch t {
	case models.ToolTypeConsumible, models.ToolTypeHerramienta, models.ToolTypeEquipo, models.ToolTypeEspecializado:
		return true
	}
	return false
}

// GET /api/herramientas
func ListToolsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tools []models.Tool
		if err := database.DB.Order("name asc").Find(&tools).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las herramientas")
		}

		res := make([]ToolResponse, 0, len(tools))
		for _, tool := range tools {
			res = append(res, toResponse(tool))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/herramientas (solo admin)
func CreateToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateToolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if !validToolType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de herramienta inválido")
		}

		tool := models.Tool{
			Name:            body.Name,
			Type:            body.Type,
			Category:        strings.TrimSpace(body.Category),
			Cost:            body.Cost,
			TotalInvestment: body.TotalInvestment,
		}

		if tool.Type == models.ToolTypeConsumible {
			if tool.Cost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El costo no puede ser negativo")
			}
		} else {
			if !KnownCategory(tool.Category) {
				return fiber.NewError(fiber.StatusBadRequest, "Categoría desconocida: "+tool.Category)
			}
			if err := RecomputeAmortization(&tool); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		if err := database.DB.Create(&tool).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear la herramienta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "tool",
			EntityID:    tool.ID,
			Action:      models.AuditActionCreate,
			Description: "Herramienta creada: " + tool.Name,
			After:       tool,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(tool))
	}
}

// PUT /api/admin/herramientas/:id
func UpdateToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tool models.Tool
		if err := database.DB.First(&tool, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Herramienta no encontrada")
		}
		before := tool

		var body UpdateToolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		needsRecompute := false
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "El nombre no puede quedar vacío")
			}
			tool.Name = name
		}
		if body.Type != nil {
			if !validToolType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo de herramienta inválido")
			}
			tool.Type = *body.Type
			needsRecompute = true
		}
		if body.Category != nil {
			tool.Category = strings.TrimSpace(*body.Category)
			needsRecompute = true
		}
		if body.Cost != nil {
			if *body.Cost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El costo no puede ser negativo")
			}
			tool.Cost = *body.Cost
		}
		if body.TotalInvestment != nil {
			tool.TotalInvestment = *body.TotalInvestment
			needsRecompute = true
		}

		// Cambió categoría, tipo o inversión: la vida útil y el valor de rescate
		// dependen de ellos, así que se recalculan aquí mismo.
		if needsRecompute {
			if err := RecomputeAmortization(&tool); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		if err := database.DB.Save(&tool).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la herramienta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "tool",
			EntityID:    tool.ID,
			Action:      models.AuditActionUpdate,
			Description: "Herramienta actualizada: " + tool.Name,
			Before:      before,
			After:       tool,
		})

		return c.JSON(toResponse(tool))
	}
}

// DELETE /api/admin/herramientas/:id
func DeleteToolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tool models.Tool
		if err := database.DB.First(&tool, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Herramienta no encontrada")
		}

		if err := database.DB.Delete(&tool).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la herramienta")
		}

		userID, userName := audit.CurrentUser(c.Locals(auth.CtxUserIDKey))
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "tool",
			EntityID:    tool.ID,
			Action:      models.AuditActionDelete,
			Description: "Herramienta eliminada: " + tool.Name,
			Before:      tool,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
