package payments

import (
	"time"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"
	"apex-academy/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func GetPaymentsAPI(c *fiber.Ctx) error {
	playerID := c.Query("player_id")
	method := c.Query("method")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	if method != "" && !models.PaymentMethod(method).Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid method. Must be cash, card, or transfer"})
	}

	dateFrom, err := parseDateParam(c.Query("date_from"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_from. Use YYYY-MM-DD"})
	}
	dateTo, err := parseDateParam(c.Query("date_to"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_to. Use YYYY-MM-DD"})
	}

	payments, totalCount, err := database.SearchPaymentsWithPagination(config.GetDB(), playerID, method, dateFrom, dateTo, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(fiber.Map{
		"payments":    payments,
		"count":       len(payments),
		"total_count": totalCount,
	})
}

func GetPaymentStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetPaymentStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch payment statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func GetPaymentByIDAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}
	if payment == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
	}

	return c.JSON(payment)
}

func RecordPaymentAPI(c *fiber.Ctx) error {
	type RecordPaymentRequest struct {
		PlayerID string          `json:"player_id" validate:"required,uuid"`
		Amount   decimal.Decimal `json:"amount" validate:"required"`
		Method   string          `json:"method" validate:"required,oneof=cash card transfer"`
		PaidAt   string          `json:"paid_at"`
		Notes    string          `json:"notes"`
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}
	if !req.Amount.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Amount must be positive"})
	}

	player, err := database.GetPlayerByID(config.GetDB(), req.PlayerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch player"})
	}
	if player == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
	}

	user := c.Locals("user").(*models.User)
	payment := &models.Payment{
		PlayerID:   req.PlayerID,
		Amount:     req.Amount,
		Method:     models.PaymentMethod(req.Method),
		Notes:      req.Notes,
		RecordedBy: &user.ID,
	}
	if req.PaidAt != "" {
		paidAt, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid paid_at. Use YYYY-MM-DD"})
		}
		payment.PaidAt = paidAt
	}

	if err := services.RecordPayment(config.GetDB(), payment); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

func DeletePaymentAPI(c *fiber.Ctx) error {
	if err := database.DeletePayment(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "payment not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
}

func GetReceiptAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}
	if payment == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
	}

	receipt, err := services.BuildReceipt(config.GetDB(), config.GetAcademyName(), c.BaseURL(), payment)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build receipt"})
	}

	return c.JSON(receipt)
}

func ReceiptQRCodeAPI(c *fiber.Ctx) error {
	reference := c.Params("reference")

	payment, err := database.GetPaymentByReference(config.GetDB(), reference)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payment"})
	}
	if payment == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Receipt not found"})
	}

	png, err := services.ReceiptQRCode(c.BaseURL(), reference)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render QR code"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// ReceiptPage renders the public receipt lookup page guardians reach by
// scanning the QR code on a printed receipt.
func ReceiptPage(c *fiber.Ctx) error {
	reference := c.Params("reference")

	payment, err := database.GetPaymentByReference(config.GetDB(), reference)
	if err != nil || payment == nil {
		return c.Status(404).Render("receipt_not_found", fiber.Map{
			"Title":     "Receipt Not Found - " + config.GetAcademyName(),
			"Reference": reference,
		})
	}

	receipt, err := services.BuildReceipt(config.GetDB(), config.GetAcademyName(), c.BaseURL(), payment)
	if err != nil {
		return c.Status(500).Render("receipt_not_found", fiber.Map{
			"Title":     "Receipt Error - " + config.GetAcademyName(),
			"Reference": reference,
		})
	}

	return c.Render("receipt", fiber.Map{
		"Title":       "Receipt " + reference + " - " + config.GetAcademyName(),
		"AcademyName": receipt.AcademyName,
		"Reference":   payment.Reference,
		"PlayerName":  receipt.PlayerName,
		"BranchName":  receipt.BranchName,
		"Amount":      payment.Amount.StringFixed(2),
		"Method":      string(payment.Method),
		"PaidAt":      payment.PaidAt.Format("02 Jan 2006"),
		"Notes":       payment.Notes,
		"QRCode":      receipt.QRCode,
		"IssuedAt":    receipt.IssuedAt.Format("02 Jan 2006 15:04"),
	})
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
