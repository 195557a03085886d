package attendance

import (
	"errors"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"
	"apex-academy/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func GetSessionRosterAPI(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	session, err := database.GetSessionByID(config.GetDB(), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if session == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	if status := coachOwnsSession(c, session); status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": "You can only view rosters for your own sessions"})
	}

	roster, err := database.GetSessionRoster(config.GetDB(), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roster"})
	}

	return c.JSON(fiber.Map{
		"session": session,
		"roster":  roster,
		"count":   len(roster),
	})
}

func GetAttendanceRecordAPI(c *fiber.Ctx) error {
	record, err := database.GetAttendanceRecordByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance record"})
	}
	if record == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Attendance record not found"})
	}

	return c.JSON(record)
}

// ChangeAttendanceAPI moves an attendance record between pending, present and
// absent, keeping the player's remaining-session balance in step. Personal
// training packages need a duration on first marking; re-marking reuses the
// stored one unless a new duration or force_default is sent.
func ChangeAttendanceAPI(c *fiber.Ctx) error {
	type ChangeAttendanceRequest struct {
		Status       string           `json:"status" validate:"required,oneof=pending present absent"`
		Duration     *decimal.Decimal `json:"duration"`
		ForceDefault bool             `json:"force_default"`
	}

	var req ChangeAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}
	if req.Duration != nil && !req.Duration.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Duration must be positive"})
	}

	recordID := c.Params("id")
	record, err := database.GetAttendanceRecordByID(config.GetDB(), recordID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance record"})
	}
	if record == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Attendance record not found"})
	}

	session, err := database.GetSessionByID(config.GetDB(), record.SessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if session == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.Status == models.SessionCancelled {
		return c.Status(409).JSON(fiber.Map{"error": "Cannot mark attendance on a cancelled session"})
	}
	if status := coachOwnsSession(c, session); status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": "You can only mark attendance for your own sessions"})
	}

	user := c.Locals("user").(*models.User)
	outcome, err := services.ChangeAttendanceStatus(config.GetDB(), recordID, services.StatusChange{
		Target:       models.AttendanceStatus(req.Status),
		Duration:     req.Duration,
		ForceDefault: req.ForceDefault,
		MarkedBy:     &user.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDurationRequired):
			return c.Status(409).JSON(fiber.Map{
				"error":   "duration_required",
				"message": "This player is on a personal training package. Provide a duration or set force_default.",
			})
		case errors.Is(err, services.ErrRecordNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Attendance record not found"})
		case errors.Is(err, services.ErrPlayerNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status. Must be pending, present, or absent"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to change attendance status"})
	}

	return c.JSON(fiber.Map{
		"message":            "Attendance updated successfully",
		"record":             outcome.Record,
		"remaining_sessions": outcome.RemainingSessions,
		"debited":            outcome.Debited,
		"credited":           outcome.Credited,
		"clamped":            outcome.Clamped,
	})
}

// coachOwnsSession returns 0 when the caller may touch the session's
// attendance: admins always, coaches only on sessions they coach. Any other
// value is the HTTP status to reject with.
func coachOwnsSession(c *fiber.Ctx, session *models.TrainingSession) int {
	user := c.Locals("user").(*models.User)
	if user.IsAdmin() {
		return 0
	}

	coach, err := database.GetCoachByUserID(config.GetDB(), user.ID)
	if err != nil {
		return 500
	}
	if coach == nil || session.CoachID == nil || *session.CoachID != coach.ID {
		return 403
	}
	return 0
}
