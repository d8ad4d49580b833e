package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/middleware"
)

// SetupAuthRoutes configures the back-office authentication routes.
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	group := app.Group("/api/auth")

	group.Post("/register", auth.Register)
	group.Post("/login", auth.Login)
	group.Get("/verify", middleware.Protected(), auth.Verify)
}
