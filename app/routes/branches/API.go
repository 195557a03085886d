package branches

import (
	"apex-academy/app/config"
	"apex-academy/app/database"
	"apex-academy/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetBranchesAPI(c *fiber.Ctx) error {
	branches, err := database.GetAllBranches(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch branches"})
	}

	return c.JSON(fiber.Map{
		"branches": branches,
		"count":    len(branches),
	})
}

func GetBranchByIDAPI(c *fiber.Ctx) error {
	branch, err := database.GetBranchByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch branch"})
	}
	if branch == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Branch not found"})
	}

	return c.JSON(branch)
}

func CreateBranchAPI(c *fiber.Ctx) error {
	type CreateBranchRequest struct {
		Name    string `json:"name" validate:"required"`
		Code    string `json:"code" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	var req CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	branch := &models.Branch{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := database.CreateBranch(config.GetDB(), branch); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create branch"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Branch created successfully",
		"branch":  branch,
	})
}

func UpdateBranchAPI(c *fiber.Ctx) error {
	type UpdateBranchRequest struct {
		Name    string `json:"name" validate:"required"`
		Code    string `json:"code" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	var req UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	branch := &models.Branch{
		ID:      c.Params("id"),
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := database.UpdateBranch(config.GetDB(), branch); err != nil {
		if err.Error() == "branch not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Branch not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update branch"})
	}

	return c.JSON(fiber.Map{
		"message": "Branch updated successfully",
		"branch":  branch,
	})
}

func DeleteBranchAPI(c *fiber.Ctx) error {
	if err := database.DeleteBranch(config.GetDB(), c.Params("id")); err != nil {
		if err.Error() == "branch not found" {
			return c.Status(404).JSON(fiber.Map{"error": "Branch not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete branch"})
	}

	return c.JSON(fiber.Map{"message": "Branch deleted successfully"})
}
