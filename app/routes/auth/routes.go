package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"apex-academy/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/me", MeAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the user context.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsActive:  true,
	}

	// Convert role names to role objects
	roles := make([]*models.Role, len(claims.Roles))
	for i, roleName := range claims.Roles {
		roles[i] = &models.Role{Name: roleName}
	}
	user.Roles = roles

	c.Locals("user_id", user.ID)
	c.Locals("user_email", user.Email)
	c.Locals("user_roles", roles)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware checks if the user has one of the required roles.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRoles, ok := c.Locals("user_roles").([]*models.Role)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}

		for _, userRole := range userRoles {
			for _, allowedRole := range allowedRoles {
				if userRole.Name == allowedRole {
					return c.Next()
				}
			}
		}

		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
