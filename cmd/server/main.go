package main

import (
	"log"
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/config"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/ingredients"
	"panaderia-backend/internal/inventario"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/production"
	"panaderia-backend/internal/recipes"
	"panaderia-backend/internal/tools"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	// CORS: los orígenes llegan como string separado por comas
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protegido
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Rutas de administración (catálogos maestros)
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Ingredientes
	adminRoutes.Post("/ingredientes", ingredients.CreateIngredientHandler())
	adminRoutes.Put("/ingredientes/:id", ingredients.UpdateIngredientHandler())
	adminRoutes.Delete("/ingredientes/:id", ingredients.DeleteIngredientHandler())

	// Herramientas y equipo
	adminRoutes.Post("/herramientas", tools.CreateToolHandler())
	adminRoutes.Put("/herramientas/:id", tools.UpdateToolHandler())
	adminRoutes.Delete("/herramientas/:id", tools.DeleteToolHandler())

	// Recetas
	adminRoutes.Post("/recetas", recipes.CreateRecipeHandler())
	adminRoutes.Put("/recetas/:id", recipes.UpdateRecipeHandler())
	adminRoutes.Delete("/recetas/:id", recipes.DeleteRecipeHandler())

	// Catálogos (cualquier usuario autenticado)
	protected.Get("/ingredientes", ingredients.ListIngredientsHandler())
	protected.Get("/herramientas", tools.ListToolsHandler())
	protected.Get("/recetas", recipes.ListRecipesHandler())
	protected.Get("/recetas/:id", recipes.GetRecipeHandler())

	// Costeo de recetas
	protected.Get("/recetas/:id/costos", recipes.RecipeCostHandler())
	protected.Get("/recetas/:id/costos/export", recipes.ExportRecipeCostHandler())
	protected.Post("/recetas/:id/precio-sugerido", recipes.SuggestedPriceHandler())

	// Inventario
	protected.Get("/inventario", inventario.ListInventoryHandler())
	protected.Get("/inventario/alertas", inventario.LowStockAlertsHandler())
	protected.Put("/inventario/:ingredientId", inventario.SetStockHandler())

	// Producción
	protected.Post("/producciones/verificar", production.VerifyProductionHandler())
	protected.Post("/producciones", production.ConfirmProductionHandler())
	protected.Get("/producciones", production.ListProductionsHandler())

	// Auditoría
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
