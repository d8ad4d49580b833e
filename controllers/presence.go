package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// PresenceController exposes the "is the priest at church" flag.
type PresenceController struct {
	DB *gorm.DB
}

func NewPresenceController(conn *gorm.DB) *PresenceController {
	return &PresenceController{DB: conn}
}

// Toggle flips the caller's presence flag. The caller must hold the rector
// role; the check runs against the stored member, not just the token.
func (pc *PresenceController) Toggle(c *fiber.Ctx) error {
	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No authentication token, access denied",
		})
	}

	var member models.Member
	if err := pc.DB.First(&member, memberID).Error; err != nil || member.Role != models.RoleRector {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only rector can update presence",
		})
	}

	member.IsAtChurch = !member.IsAtChurch
	if err := pc.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error toggling presence",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"isAtChurch": member.IsAtChurch})
}

// Status reports the rector's presence. With several rector accounts the
// first-created one wins; with none the answer is false.
func (pc *PresenceController) Status(c *fiber.Ctx) error {
	var rector models.Member
	err := pc.DB.Where("role = ?", models.RoleRector).
		Order("created_at asc").
		First(&rector).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"isAtChurch": false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error getting status",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"isAtChurch": rector.IsAtChurch})
}
