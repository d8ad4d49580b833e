package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/middleware"
)

// SetupGalleryRoutes configures the photo gallery routes.
func SetupGalleryRoutes(app *fiber.App, gallery *controllers.GalleryController) {
	group := app.Group("/api/gallery")

	group.Get("/", gallery.GetAll)
	group.Get("/:id", gallery.GetOne)
	group.Post("/", middleware.Protected(), gallery.Create)
	group.Put("/:id", middleware.Protected(), gallery.Update)
	group.Delete("/:id", middleware.Protected(), gallery.Delete)
}
