package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/cron"
	"github.com/stnicholas-parish/parish-app/db"
	"github.com/stnicholas-parish/parish-app/redis"
	"github.com/stnicholas-parish/parish-app/routes"
	"github.com/stnicholas-parish/parish-app/utils"
)

func main() {
	conn, err := db.Init()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	cache := redis.New()

	app := fiber.New(fiber.Config{
		BodyLimit: utils.MaxImageSize + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Static("/uploads", utils.UploadDir)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		database := "disconnected"
		status := fiber.StatusServiceUnavailable
		if db.Ping(conn) {
			database = "connected"
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   "ok",
			"message":  "Church API Server is running",
			"database": database,
		})
	})

	routes.SetupAuthRoutes(app, controllers.NewAuthController(conn))
	routes.SetupParishRoutes(app,
		controllers.NewMemberController(conn),
		controllers.NewAppointmentController(conn, cache),
		controllers.NewChatController(conn),
		controllers.NewPresenceController(conn),
	)
	routes.SetupGalleryRoutes(app, controllers.NewGalleryController(conn))
	routes.SetupContentRoutes(app, controllers.NewContentController(conn))

	cron.StartReminderJobs(conn)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("🚀 Server running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
