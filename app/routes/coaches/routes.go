package coaches

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupCoachesRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/coaches")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetCoachesAPI)      // Search coaches (?search=&branch_id=&limit=&offset=)
	api.Get("/:id", GetCoachByIDAPI) // Get single coach by ID

	// Admin-only mutations
	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateCoachAPI)
	api.Put("/:id", admin, UpdateCoachAPI)
	api.Delete("/:id", admin, DeleteCoachAPI)
}
