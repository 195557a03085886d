package branches

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupBranchesRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/branches")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetBranchesAPI)      // Get all branches with player/coach counts
	api.Get("/:id", GetBranchByIDAPI) // Get single branch by ID

	// Admin-only mutations
	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateBranchAPI)
	api.Put("/:id", admin, UpdateBranchAPI)
	api.Delete("/:id", admin, DeleteBranchAPI)
}
