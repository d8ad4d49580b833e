package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/middleware"
)

// SetupContentRoutes configures the page-content routes.
func SetupContentRoutes(app *fiber.App, content *controllers.ContentController) {
	group := app.Group("/api/content")

	group.Get("/", content.GetAll)
	group.Get("/:key", content.GetByKey)
	group.Post("/", middleware.Protected(), content.Upsert)
	group.Delete("/:key", middleware.Protected(), content.Delete)
}
