package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// GalleryController manages the photo gallery. Reads are public, writes
// require an authenticated back-office or parish token.
type GalleryController struct {
	DB *gorm.DB
}

func NewGalleryController(conn *gorm.DB) *GalleryController {
	return &GalleryController{DB: conn}
}

// GetAll lists visible items, optionally filtered by category and limited.
func (gc *GalleryController) GetAll(c *fiber.Ctx) error {
	query := gc.DB.Where("is_visible = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Order("sort_order asc").Order("date desc")
	if limit := c.QueryInt("limit"); limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching gallery",
			Error:   err.Error(),
		})
	}
	return c.JSON(items)
}

// GetOne returns a single item by id.
func (gc *GalleryController) GetOne(c *fiber.Ctx) error {
	var item models.GalleryItem
	if err := gc.DB.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Gallery item not found",
		})
	}
	return c.JSON(item)
}

// Create stores a new gallery item from multipart form data. The image
// field is required.
func (gc *GalleryController) Create(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image is required",
		})
	}

	imageURL, err := utils.SaveGalleryImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	category := models.GalleryCategory(c.FormValue("category"))
	if category == "" {
		category = models.CategoryConstruction
	}
	if !category.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category",
		})
	}

	order, _ := strconv.Atoi(c.FormValue("order"))
	item := models.GalleryItem{
		Title:         c.FormValue("title"),
		TitleEn:       c.FormValue("titleEn"),
		Description:   c.FormValue("description"),
		DescriptionEn: c.FormValue("descriptionEn"),
		ImageURL:      imageURL,
		Category:      category,
		Date:          time.Now(),
		Order:         order,
		IsVisible:     true,
	}
	if err := gc.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error creating gallery item",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update edits a gallery item; an optional image field replaces the photo.
func (gc *GalleryController) Update(c *fiber.Ctx) error {
	var item models.GalleryItem
	if err := gc.DB.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Gallery item not found",
		})
	}

	if v := c.FormValue("title"); v != "" {
		item.Title = v
	}
	if v := c.FormValue("titleEn"); v != "" {
		item.TitleEn = v
	}
	if v := c.FormValue("description"); v != "" {
		item.Description = v
	}
	if v := c.FormValue("descriptionEn"); v != "" {
		item.DescriptionEn = v
	}
	if v := c.FormValue("category"); v != "" {
		category := models.GalleryCategory(v)
		if !category.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid category",
			})
		}
		item.Category = category
	}
	if v := c.FormValue("order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order",
			})
		}
		item.Order = order
	}
	if v := c.FormValue("isVisible"); v != "" {
		visible, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid isVisible",
			})
		}
		item.IsVisible = visible
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := utils.SaveGalleryImage(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		item.ImageURL = imageURL
	}

	if err := gc.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error updating gallery item",
			Error:   err.Error(),
		})
	}
	return c.JSON(item)
}

// Delete removes a gallery item.
func (gc *GalleryController) Delete(c *fiber.Ctx) error {
	var item models.GalleryItem
	if err := gc.DB.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Gallery item not found",
		})
	}
	if err := gc.DB.Delete(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error deleting gallery item",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Gallery item deleted successfully"})
}
