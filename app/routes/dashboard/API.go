package dashboard

import (
	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetDashboardStatsAPI)
}

// GetDashboardStatsAPI returns the landing page statistics as JSON: player
// and coach headcounts, today's session load, pending attendance, low-balance
// players, monthly revenue and the per-branch breakdown.
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch dashboard statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
