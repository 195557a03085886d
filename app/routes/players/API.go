package players

import (
	"fmt"
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

func GetPlayersAPI(c *fiber.Ctx) error {
	search := c.Query("search")
	lowBalance := c.QueryBool("low_balance", false)
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	branchID, empty, err := coachBranchScope(c, c.Query("branch_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch players"})
	}
	if empty {
		return c.JSON(fiber.Map{"players": []models.Player{}, "count": 0, "total_count": 0})
	}

	players, totalCount, err := database.SearchPlayersWithPagination(config.GetDB(), search, branchID, lowBalance, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch players"})
	}

	return c.JSON(fiber.Map{
		"players":     players,
		"count":       len(players),
		"total_count": totalCount,
	})
}

func GetPlayerStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetPlayerStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch player statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func GetPlayerByIDAPI(c *fiber.Ctx) error {
	player, err := database.GetPlayerByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch player"})
	}
	if player == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
	}

	return c.JSON(player)
}

func GetPlayerAttendanceAPI(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	if status != "" && !models.AttendanceStatus(status).Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status. Must be pending, present, or absent"})
	}

	dateFrom, err := parseDateParam(c.Query("date_from"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_from. Use YYYY-MM-DD"})
	}
	dateTo, err := parseDateParam(c.Query("date_to"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date_to. Use YYYY-MM-DD"})
	}

	entries, totalCount, err := database.GetPlayerAttendance(config.GetDB(), c.Params("id"), status, dateFrom, dateTo, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"attendance":  entries,
		"count":       len(entries),
		"total_count": totalCount,
	})
}

func GetPlayerPackagesAPI(c *fiber.Ctx) error {
	history, err := database.GetPlayerPackageHistory(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch package history"})
	}

	return c.JSON(fiber.Map{
		"history":       history,
		"count":         len(history),
		"current_cycle": len(history) + 1,
	})
}

func CreatePlayerAPI(c *fiber.Ctx) error {
	type CreatePlayerRequest struct {
		FirstName     string `json:"first_name" validate:"required"`
		LastName      string `json:"last_name" validate:"required"`
		Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
		BirthDate     string `json:"birth_date"`
		GuardianName  string `json:"guardian_name"`
		GuardianPhone string `json:"guardian_phone"`
		BranchID      string `json:"branch_id" validate:"omitempty,uuid"`
	}

	var req CreatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	player := &models.Player{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}
	if req.Gender != "" {
		gender := models.Gender(req.Gender)
		player.Gender = &gender
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid birth date. Use YYYY-MM-DD"})
		}
		player.BirthDate = &birthDate
	}
	if req.BranchID != "" {
		player.BranchID = &req.BranchID
	}

	if err := database.CreatePlayer(config.GetDB(), player); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create player"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Player created successfully",
		"player":  player,
	})
}

func UpdatePlayerAPI(c *fiber.Ctx) error {
	type UpdatePlayerRequest struct {
		FirstName     string `json:"first_name" validate:"required"`
		LastName      string `json:"last_name" validate:"required"`
		Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
		BirthDate     string `json:"birth_date"`
		GuardianName  string `json:"guardian_name"`
		GuardianPhone string `json:"guardian_phone"`
		BranchID      string `json:"branch_id" validate:"omitempty,uuid"`
	}

	var req UpdatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	player := &models.Player{
		ID:            c.Params("id"),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}
	if req.Gender != "" {
		gender := models.Gender(req.Gender)
		player.Gender = &gender
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid birth date. Use YYYY-MM-DD"})
		}
		player.BirthDate = &birthDate
	}
	if req.BranchID != "" {
		player.BranchID = &req.BranchID
	}

	if err := database.UpdatePlayer(config.GetDB(), player); err != nil {
		if err.Error() == "player not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update player"})
	}

	return c.JSON(fiber.Map{
		"message": "Player updated successfully",
		"player":  player,
	})
}

func DeletePlayerAPI(c *fiber.Ctx) error {
	if err := database.DeletePlayer(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "player not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete player"})
	}

	return c.JSON(fiber.Map{"message": "Player deleted successfully"})
}

// AssignPackageAPI assigns or renews a player's training package, optionally
// recording the payment taken at the counter in the same transaction.
func AssignPackageAPI(c *fiber.Ctx) error {
	type PaymentRequest struct {
		Amount decimal.Decimal `json:"amount" validate:"required"`
		Method string          `json:"method" validate:"required,oneof=cash card transfer"`
		Notes  string          `json:"notes"`
	}
	type AssignPackageRequest struct {
		PackageID string          `json:"package_id" validate:"required,uuid"`
		Payment   *PaymentRequest `json:"payment" validate:"omitempty"`
	}

	var req AssignPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	playerID := c.Params("id")
	user := c.Locals("user").(*models.User)

	var payment *models.Payment
	if req.Payment != nil {
		if !req.Payment.Amount.IsPositive() {
			return c.Status(400).JSON(fiber.Map{"error": "Payment amount must be positive"})
		}
		payment = &models.Payment{
			PlayerID:   playerID,
			Amount:     req.Payment.Amount,
			Method:     models.PaymentMethod(req.Payment.Method),
			Notes:      req.Payment.Notes,
			RecordedBy: &user.ID,
		}
	}

	if err := services.AssignPackage(config.GetDB(), playerID, req.PackageID, payment); err != nil {
		switch err.Error() {
		case "player not found":
			return c.Status(404).JSON(fiber.Map{"error": "Player not found"})
		case "package not found":
			return c.Status(404).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to assign package"})
	}

	player, err := database.GetPlayerByID(config.GetDB(), playerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch player"})
	}

	resp := fiber.Map{
		"message": "Package assigned successfully",
		"player":  player,
	}
	if payment != nil {
		resp["payment"] = payment
	}
	return c.JSON(resp)
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date, use YYYY-MM-DD")
	}
	return &t, nil
}

// coachBranchScope narrows the player list to the signed-in coach's branch.
// Admins keep whatever filter they asked for. The second return is true when
// the caller is a coach with no branch to scope to, meaning nothing to show.
func coachBranchScope(c *fiber.Ctx, requested string) (string, bool, error) {
	user := c.Locals("user").(*models.User)
	if user.IsAdmin() {
		return requested, false, nil
	}

	coach, err := database.GetCoachByUserID(config.GetDB(), user.ID)
	if err != nil {
		return "", false, err
	}
	if coach == nil || coach.BranchID == nil {
		return "", true, nil
	}
	return *coach.BranchID, false, nil
}
