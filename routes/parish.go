package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/controllers"
	"github.com/stnicholas-parish/parish-app/middleware"
)

// SetupParishRoutes configures member accounts, presence, chat, bookings
// and the admin management endpoints.
func SetupParishRoutes(
	app *fiber.App,
	members *controllers.MemberController,
	appointments *controllers.AppointmentController,
	chat *controllers.ChatController,
	presence *controllers.PresenceController,
) {
	group := app.Group("/api/parish")

	// Public
	group.Post("/register", members.Register)
	group.Post("/login", members.Login)
	group.Get("/presence/status", presence.Status)
	group.Get("/appointments/busy/:date", appointments.GetBusySlots)

	// Authenticated members
	group.Put("/presence/toggle", middleware.Protected(), presence.Toggle)
	group.Get("/chat/communal", middleware.Protected(), chat.GetCommunal)
	group.Get("/chat/private/:memberId", middleware.Protected(), chat.GetPrivate)
	group.Post("/chat/send", middleware.Protected(), chat.Send)
	group.Post("/appointments", middleware.Protected(), appointments.Book)
	group.Get("/appointments/me", middleware.Protected(), appointments.GetMyAppointments)

	// Admin / rector
	group.Get("/members/pending", middleware.Protected(), middleware.RequireAdmin(), members.GetPendingMembers)
	group.Get("/members/all", middleware.Protected(), middleware.RequireAdmin(), members.GetAllMembers)
	group.Put("/members/status/:id", middleware.Protected(), middleware.RequireAdmin(), members.UpdateMemberStatus)
	group.Put("/members/:id/password", middleware.Protected(), middleware.RequireAdmin(), members.ResetMemberPassword)
	group.Put("/members/:id", middleware.Protected(), middleware.RequireAdmin(), members.UpdateMember)
	group.Delete("/members/:id", middleware.Protected(), middleware.RequireAdmin(), members.DeleteMember)
	group.Get("/appointments/all", middleware.Protected(), middleware.RequireAdmin(), appointments.GetAllAppointments)
	group.Put("/appointments/status/:id", middleware.Protected(), middleware.RequireAdmin(), appointments.UpdateStatus)
	group.Put("/appointments/:id", middleware.Protected(), middleware.RequireAdmin(), appointments.Reschedule)
}
