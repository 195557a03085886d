package packages

import (
	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func GetPackagesAPI(c *fiber.Ctx) error {
	packages, err := database.GetAllPackages(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch packages"})
	}

	return c.JSON(fiber.Map{
		"packages": packages,
		"count":    len(packages),
	})
}

func GetPackageByIDAPI(c *fiber.Ctx) error {
	pkg, err := database.GetPackageByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch package"})
	}
	if pkg == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Package not found"})
	}

	return c.JSON(pkg)
}

func CreatePackageAPI(c *fiber.Ctx) error {
	type CreatePackageRequest struct {
		Name             string          `json:"name" validate:"required"`
		Sessions         decimal.Decimal `json:"sessions" validate:"required"`
		Price            decimal.Decimal `json:"price"`
		RequiresDuration bool            `json:"requires_duration"`
	}

	var req CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}
	if !req.Sessions.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Sessions must be positive"})
	}
	if req.Price.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Price cannot be negative"})
	}

	pkg := &models.TrainingPackage{
		Name:             req.Name,
		Sessions:         req.Sessions,
		Price:            req.Price,
		RequiresDuration: req.RequiresDuration,
	}

	if err := database.CreatePackage(config.GetDB(), pkg); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create package"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Package created successfully",
		"package": pkg,
	})
}

func UpdatePackageAPI(c *fiber.Ctx) error {
	type UpdatePackageRequest struct {
		Name             string          `json:"name" validate:"required"`
		Sessions         decimal.Decimal `json:"sessions" validate:"required"`
		Price            decimal.Decimal `json:"price"`
		RequiresDuration bool            `json:"requires_duration"`
	}

	var req UpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}
	if !req.Sessions.IsPositive() {
		return c.Status(400).JSON(fiber.Map{"error": "Sessions must be positive"})
	}
	if req.Price.IsNegative() {
		return c.Status(400).JSON(fiber.Map{"error": "Price cannot be negative"})
	}

	pkg := &models.TrainingPackage{
		ID:               c.Params("id"),
		Name:             req.Name,
		Sessions:         req.Sessions,
		Price:            req.Price,
		RequiresDuration: req.RequiresDuration,
	}

	if err := database.UpdatePackage(config.GetDB(), pkg); err != nil {
		if err.Error() == "package not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update package"})
	}

	return c.JSON(fiber.Map{
		"message": "Package updated successfully",
		"package": pkg,
	})
}

func DeletePackageAPI(c *fiber.Ctx) error {
	if err := database.DeletePackage(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "package not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete package"})
	}

	return c.JSON(fiber.Map{"message": "Package deleted successfully"})
}
