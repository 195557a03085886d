package coaches

import (
	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"
	"apex-academy/app/routes/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetCoachesAPI(c *fiber.Ctx) error {
	search := c.Query("search")
	branchID := c.Query("branch_id")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	coaches, totalCount, err := database.SearchCoachesWithPagination(config.GetDB(), search, branchID, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch coaches"})
	}

	return c.JSON(fiber.Map{
		"coaches":     coaches,
		"count":       len(coaches),
		"total_count": totalCount,
	})
}

func GetCoachByIDAPI(c *fiber.Ctx) error {
	coach, err := database.GetCoachByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch coach"})
	}
	if coach == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Coach not found"})
	}

	return c.JSON(coach)
}

func CreateCoachAPI(c *fiber.Ctx) error {
	type CreateCoachRequest struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty"`
		BranchID  string `json:"branch_id" validate:"omitempty,uuid"`
		// Optional login account; both must be provided together
		Email    string `json:"email" validate:"omitempty,email"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	var req CreateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}
	if (req.Email == "") != (req.Password == "") {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password must be provided together"})
	}

	coach := &models.Coach{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}
	if req.BranchID != "" {
		coach.BranchID = &req.BranchID
	}

	// Create the login account first so the coach row can reference it
	if req.Email != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create login account"})
		}

		user := &models.User{
			Email:     req.Email,
			Password:  hashed,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		}
		if err := database.CreateUser(config.GetDB(), user, []string{models.RoleCoach}); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create login account", "details": err.Error()})
		}
		coach.UserID = &user.ID
	}

	if err := database.CreateCoach(config.GetDB(), coach); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create coach"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Coach created successfully",
		"coach":   coach,
	})
}

func UpdateCoachAPI(c *fiber.Ctx) error {
	type UpdateCoachRequest struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Phone     string `json:"phone"`
		Specialty string `json:"specialty"`
		BranchID  string `json:"branch_id" validate:"omitempty,uuid"`
	}

	var req UpdateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	coach := &models.Coach{
		ID:        c.Params("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	}
	if req.BranchID != "" {
		coach.BranchID = &req.BranchID
	}

	if err := database.UpdateCoach(config.GetDB(), coach); err != nil {
		if err.Error() == "coach not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update coach"})
	}

	return c.JSON(fiber.Map{
		"message": "Coach updated successfully",
		"coach":   coach,
	})
}

func DeleteCoachAPI(c *fiber.Ctx) error {
	if err := database.DeleteCoach(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "coach not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete coach"})
	}

	return c.JSON(fiber.Map{"message": "Coach deleted successfully"})
}
