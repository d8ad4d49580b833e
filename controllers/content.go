package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// ContentController manages the keyed page-text entries.
type ContentController struct {
	DB *gorm.DB
}

func NewContentController(conn *gorm.DB) *ContentController {
	return &ContentController{DB: conn}
}

// GetAll lists content entries, optionally filtered by type and key.
func (cc *ContentController) GetAll(c *fiber.Ctx) error {
	query := cc.DB
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if key := c.Query("key"); key != "" {
		query = query.Where("key = ?", key)
	}

	var entries []models.Content
	if err := query.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching content",
			Error:   err.Error(),
		})
	}
	return c.JSON(entries)
}

// GetByKey returns a single content entry.
func (cc *ContentController) GetByKey(c *fiber.Ctx) error {
	var entry models.Content
	if err := cc.DB.Where("key = ?", c.Params("key")).First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Content not found",
		})
	}
	return c.JSON(entry)
}

// Upsert creates or updates the entry with the given key.
func (cc *ContentController) Upsert(c *fiber.Ctx) error {
	type contentInput struct {
		Key      string             `json:"key"`
		Title    string             `json:"title"`
		TitleEn  string             `json:"titleEn"`
		Body     string             `json:"content"`
		BodyEn   string             `json:"contentEn"`
		Type     models.ContentType `json:"type"`
		Metadata models.Metadata    `json:"metadata"`
	}

	input := new(contentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if input.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Content key is required",
		})
	}
	contentType := input.Type
	if contentType == "" {
		contentType = models.ContentOther
	}
	if !contentType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid content type",
		})
	}

	var entry models.Content
	err := cc.DB.Where("key = ?", input.Key).First(&entry).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error saving content",
			Error:   err.Error(),
		})
	}

	entry.Key = input.Key
	entry.Title = input.Title
	entry.TitleEn = input.TitleEn
	entry.Body = input.Body
	entry.BodyEn = input.BodyEn
	entry.Type = contentType
	if input.Metadata != nil {
		entry.Metadata = input.Metadata
	}

	if err := cc.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error saving content",
			Error:   err.Error(),
		})
	}
	return c.JSON(entry)
}

// Delete removes the entry with the given key.
func (cc *ContentController) Delete(c *fiber.Ctx) error {
	var entry models.Content
	if err := cc.DB.Where("key = ?", c.Params("key")).First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Content not found",
		})
	}
	if err := cc.DB.Delete(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error deleting content",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Content deleted successfully"})
}
