package sessions

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionsRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/sessions")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetSessionsAPI)         // Search sessions (?branch_id=&coach_id=&status=&date_from=&date_to=)
	api.Get("/calendar", GetCalendarAPI) // Calendar feed (?from=&to=&branch_id=&coach_id=)
	api.Get("/:id", GetSessionByIDAPI)   // Get single session with participant counts

	// Admin-only mutations
	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, CreateSessionAPI)
	api.Put("/:id", admin, UpdateSessionAPI)
	api.Delete("/:id", admin, DeleteSessionAPI)
	api.Post("/:id/cancel", admin, CancelSessionAPI)
	api.Post("/:id/complete", admin, CompleteSessionAPI)
	api.Post("/:id/participants", admin, AddParticipantsAPI)
	api.Delete("/:id/participants/:playerId", admin, RemoveParticipantAPI)
}
