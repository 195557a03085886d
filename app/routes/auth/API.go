package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if user == nil || !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	// Convert roles to string slice
	roleNames := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roleNames[i] = role.Name
	}

	token, err := GenerateJWT(user.ID, user.Email, user.FirstName, user.LastName, roleNames)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	// Set JWT as HTTP-only cookie; the token is also returned for clients
	// that prefer the Authorization header.
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   config.AppConfig != nil && config.AppConfig.AppEnv == "production",
		SameSite: "Lax",
	})

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// MeAPI returns the authenticated user, plus the coach profile when the
// login belongs to a coach.
func MeAPI(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var coach *models.Coach
	if user.HasRole(models.RoleCoach) {
		var err error
		coach, err = database.GetCoachByUserID(config.GetDB(), user.ID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"coach": coach,
	})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 8 characters"})
	}

	userID := c.Locals("user_id").(string)

	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if user == nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), userID, hashedPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}
