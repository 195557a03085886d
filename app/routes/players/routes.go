package players

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayersRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/players")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPlayersAPI)                        // Search players (?search=&branch_id=&low_balance=&limit=&offset=)
	api.Get("/stats", GetPlayerStatsAPI)               // Enrollment and balance statistics
	api.Get("/:id", GetPlayerByIDAPI)                  // Get single player by ID
	api.Get("/:id/attendance", GetPlayerAttendanceAPI) // Attendance trail (?status=&date_from=&date_to=)
	api.Get("/:id/packages", GetPlayerPackagesAPI)     // Package purchase history with cycles

	// Admin-only mutations
	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreatePlayerAPI)
	api.Put("/:id", admin, UpdatePlayerAPI)
	api.Delete("/:id", admin, DeletePlayerAPI)
	api.Post("/:id/package", admin, AssignPackageAPI)
}
