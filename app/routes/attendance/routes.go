package attendance

import (
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App) {
	// API routes
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)
	api.Get("/:id", GetAttendanceRecordAPI)     // Get single attendance record
	api.Put("/:id/status", ChangeAttendanceAPI) // Mark present/absent or reset to pending

	// Session roster lives under the sessions path but is attendance data
	app.Get("/api/sessions/:id/roster", auth.AuthMiddleware, GetSessionRosterAPI)
}
