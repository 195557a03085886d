package exports

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupExportsRoutes(app *fiber.App) {
	// API routes, admin only: exports carry guardian contact and payment data
	api := app.Group("/api/exports")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin))
	api.Get("/players.csv", ExportPlayersCSV)
	api.Get("/players.xlsx", ExportPlayersXLSX)
	api.Get("/attendance.csv", ExportAttendanceCSV)
	api.Get("/attendance.xlsx", ExportAttendanceXLSX)
	api.Get("/payments.csv", ExportPaymentsCSV)
	api.Get("/payments.xlsx", ExportPaymentsXLSX)
}
