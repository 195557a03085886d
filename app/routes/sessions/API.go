package sessions

import (
	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetSessionsAPI(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	if status != "" && !models.SessionStatus(status).Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status. Must be scheduled, completed, or cancelled"})
	}

	dateFrom, err := parseDateParam(c.Query("date_from"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_from. Use YYYY-MM-DD"})
	}
	dateTo, err := parseDateParam(c.Query("date_to"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_to. Use YYYY-MM-DD"})
	}

	coachID, empty, err := coachScope(c, c.Query("coach_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}
	if empty {
		return c.JSON(fiber.Map{"sessions": []models.TrainingSession{}, "count": 0, "total_count": 0})
	}

	sessions, totalCount, err := database.SearchSessionsWithPagination(config.GetDB(), branchID, coachID, status, dateFrom, dateTo, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}

	return c.JSON(fiber.Map{
		"sessions":    sessions,
		"count":       len(sessions),
		"total_count": totalCount,
	})
}

func GetCalendarAPI(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil || from == nil {
		return c.Status(400).JSON(fiber.Map{"error": "from is required. Use YYYY-MM-DD"})
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil || to == nil {
		return c.Status(400).JSON(fiber.Map{"error": "to is required. Use YYYY-MM-DD"})
	}
	if to.Before(*from) {
		return c.Status(400).JSON(fiber.Map{"error": "to must not be before from"})
	}

	coachID, empty, err := coachScope(c, c.Query("coach_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch calendar"})
	}
	if empty {
		return c.JSON(fiber.Map{"sessions": []models.CalendarSession{}, "count": 0})
	}

	sessions, err := database.GetCalendarSessions(config.GetDB(), *from, *to, c.Query("branch_id"), coachID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch calendar"})
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func GetSessionByIDAPI(c *fiber.Ctx) error {
	session, err := database.GetSessionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if session == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}

	return c.JSON(session)
}

func CreateSessionAPI(c *fiber.Ctx) error {
	type CreateSessionRequest struct {
		Date        string `json:"date" validate:"required"`
		StartTime   string `json:"start_time" validate:"required"`
		EndTime     string `json:"end_time" validate:"required"`
		BranchID    string `json:"branch_id" validate:"required,uuid"`
		CoachID     string `json:"coach_id" validate:"omitempty,uuid"`
		PackageType string `json:"package_type"`
		Notes       string `json:"notes"`
	}

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	date, err := parseSessionWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var coachID *string
	if req.CoachID != "" {
		coachID = &req.CoachID
	}

	conflict, err := database.FindSessionConflict(config.GetDB(), date, req.StartTime, req.EndTime, req.BranchID, coachID, "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check for conflicts"})
	}
	if conflict != nil {
		return c.Status(409).JSON(fiber.Map{
			"error":    "Session conflicts with an existing booking",
			"conflict": conflict,
		})
	}

	session := &models.TrainingSession{
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BranchID:    req.BranchID,
		CoachID:     coachID,
		PackageType: req.PackageType,
		Notes:       req.Notes,
	}

	if err := database.CreateSession(config.GetDB(), session); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Session created successfully",
		"session": session,
	})
}

func UpdateSessionAPI(c *fiber.Ctx) error {
	type UpdateSessionRequest struct {
		Date        string `json:"date" validate:"required"`
		StartTime   string `json:"start_time" validate:"required"`
		EndTime     string `json:"end_time" validate:"required"`
		BranchID    string `json:"branch_id" validate:"required,uuid"`
		CoachID     string `json:"coach_id" validate:"omitempty,uuid"`
		PackageType string `json:"package_type"`
		Notes       string `json:"notes"`
	}

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	sessionID := c.Params("id")
	existing, err := database.GetSessionByID(config.GetDB(), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	if existing.Status != models.SessionScheduled {
		return c.Status(409).JSON(fiber.Map{"error": "Only scheduled sessions can be edited"})
	}

	date, err := parseSessionWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var coachID *string
	if req.CoachID != "" {
		coachID = &req.CoachID
	}

	conflict, err := database.FindSessionConflict(config.GetDB(), date, req.StartTime, req.EndTime, req.BranchID, coachID, sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check for conflicts"})
	}
	if conflict != nil {
		return c.Status(409).JSON(fiber.Map{
			"error":    "Session conflicts with an existing booking",
			"conflict": conflict,
		})
	}

	session := &models.TrainingSession{
		ID:          sessionID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		BranchID:    req.BranchID,
		CoachID:     coachID,
		PackageType: req.PackageType,
		Notes:       req.Notes,
	}

	if err := database.UpdateSession(config.GetDB(), session); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update session"})
	}

	return c.JSON(fiber.Map{
		"message": "Session updated successfully",
		"session": session,
	})
}

func DeleteSessionAPI(c *fiber.Ctx) error {
	if err := database.DeleteSession(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "session not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete session"})
	}

	return c.JSON(fiber.Map{"message": "Session deleted successfully"})
}

func CancelSessionAPI(c *fiber.Ctx) error {
	return setStatusAPI(c, models.SessionCancelled, "Session cancelled successfully")
}

func CompleteSessionAPI(c *fiber.Ctx) error {
	return setStatusAPI(c, models.SessionCompleted, "Session completed successfully")
}

// setStatusAPI moves a scheduled session to a terminal status.
func setStatusAPI(c *fiber.Ctx, status models.SessionStatus, message string) error {
	sessionID := c.Params("id")

	session, err := database.GetSessionByID(config.GetDB(), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if session == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.Status != models.SessionScheduled {
		return c.Status(409).JSON(fiber.Map{"error": "Only scheduled sessions can change status"})
	}

	if err := database.SetSessionStatus(config.GetDB(), sessionID, status); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update session status"})
	}

	return c.JSON(fiber.Map{"message": message})
}

func AddParticipantsAPI(c *fiber.Ctx) error {
	type AddParticipantsRequest struct {
		PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,uuid"`
	}

	var req AddParticipantsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	sessionID := c.Params("id")
	session, err := database.GetSessionByID(config.GetDB(), sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	if session == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	}
	if session.Status != models.SessionScheduled {
		return c.Status(409).JSON(fiber.Map{"error": "Participants can only be added to scheduled sessions"})
	}

	added, err := database.AddParticipants(config.GetDB(), sessionID, req.PlayerIDs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to add participants"})
	}

	return c.JSON(fiber.Map{
		"message": "Participants added successfully",
		"added":   added,
	})
}

func RemoveParticipantAPI(c *fiber.Ctx) error {
	err := database.RemoveParticipant(config.GetDB(), c.Params("id"), c.Params("playerId"))
	if err != nil {
		if err.Error() == "participant not found or already marked" {
			return c.Status(404).JSON(fiber.Map{"error": "Participant not found or already marked"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove participant"})
	}

	return c.JSON(fiber.Map{"message": "Participant removed successfully"})
}
