package payments

import (
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentsRoutes(app *fiber.App) {
	// Public receipt page, reached through the QR code on the printed receipt
	app.Get("/receipts/:reference", ReceiptPage)

	// API routes, admin only: money stays off the coach surface
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin))
	api.Get("/", GetPaymentsAPI)                        // Search payments (?player_id=&method=&date_from=&date_to=)
	api.Get("/stats", GetPaymentStatsAPI)               // Revenue summary cards
	api.Get("/receipt-qr/:reference", ReceiptQRCodeAPI) // QR PNG for a receipt reference
	api.Get("/:id", GetPaymentByIDAPI)                  // Get single payment
	api.Get("/:id/receipt", GetReceiptAPI)              // Printable receipt payload
	api.Post("/", RecordPaymentAPI)                     // Record a payment and allocate a receipt reference
	api.Delete("/:id", DeletePaymentAPI)                // Void a payment
}
