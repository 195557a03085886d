package packages

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPackagesRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/packages")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPackagesAPI)       // Get catalog packages with player counts
	api.Get("/:id", GetPackageByIDAPI) // Get single package by ID

	// Admin-only mutations
	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreatePackageAPI)
	api.Put("/:id", admin, UpdatePackageAPI)
	api.Delete("/:id", admin, DeletePackageAPI)
}
