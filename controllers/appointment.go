package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/redis"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// AppointmentController handles service bookings: the conflict-checked
// create, the busy-slot availability query and the admin management
// endpoints.
type AppointmentController struct {
	DB    *gorm.DB
	Cache *redis.Cache
}

func NewAppointmentController(conn *gorm.DB, cache *redis.Cache) *AppointmentController {
	return &AppointmentController{DB: conn, Cache: cache}
}

// Book creates a pending appointment for the authenticated member, unless
// its [start, start+duration) interval overlaps an existing pending or
// confirmed appointment the same day. The check-then-insert sequence runs
// inside a transaction under a per-day lock, so concurrent requests cannot
// both pass the check.
func (ap *AppointmentController) Book(c *fiber.Ctx) error {
	type bookInput struct {
		Type     models.ServiceType `json:"type"`
		DateTime string             `json:"dateTime"`
		Notes    string             `json:"notes"`
	}

	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No authentication token, access denied",
		})
	}

	input := new(bookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if !input.Type.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown service type",
		})
	}

	start, err := parseDateTime(input.DateTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid date/time provided",
		})
	}
	start = start.Local()

	appointment := models.Appointment{
		MemberID: memberID,
		Type:     input.Type,
		DateTime: start,
		Notes:    input.Notes,
		Status:   models.StatusPending,
	}

	unlock := utils.LockDay(start)
	defer unlock()

	err = ap.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckAvailability(tx, input.Type, start)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err == errSlotTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This time slot overlaps with an existing appointment",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error booking appointment",
			Error:   err.Error(),
		})
	}

	ap.Cache.InvalidateBusySlots(start.Format("2006-01-02"))
	go ap.sendBookingEmail(appointment)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetBusySlots returns the occupied intervals for a date so clients can
// render availability before booking. Public, cached when redis is up.
func (ap *AppointmentController) GetBusySlots(c *fiber.Ctx) error {
	date, err := parseDateTime(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid date/time provided",
		})
	}
	date = date.Local()
	day := date.Format("2006-01-02")

	if slots, ok := ap.Cache.GetBusySlots(day); ok {
		return c.JSON(slots)
	}

	slots, err := utils.BusySlots(ap.DB, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching busy slots",
			Error:   err.Error(),
		})
	}
	ap.Cache.SetBusySlots(day, slots)
	return c.JSON(slots)
}

// GetMyAppointments lists the caller's bookings ordered by start time.
func (ap *AppointmentController) GetMyAppointments(c *fiber.Ctx) error {
	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No authentication token, access denied",
		})
	}

	var appointments []models.Appointment
	if err := ap.DB.Where("member_id = ?", memberID).Order("date_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAllAppointments lists every appointment with the booking member, for
// the admin panel.
func (ap *AppointmentController) GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := ap.DB.Preload("Member").Order("date_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching all appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// UpdateStatus sets an appointment's status (confirm/cancel/complete).
// Reviving a cancelled or completed appointment re-occupies its slot, so
// that transition is conflict-checked like a fresh booking.
func (ap *AppointmentController) UpdateStatus(c *fiber.Ctx) error {
	type statusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}

	input := new(statusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if !input.Status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	var appointment models.Appointment
	if err := ap.DB.Preload("Member").First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Appointment not found",
		})
	}

	reactivating := !appointment.Status.Active() && input.Status.Active()
	appointment.Status = input.Status

	if reactivating {
		unlock := utils.LockDay(appointment.DateTime)
		defer unlock()

		err := ap.DB.Transaction(func(tx *gorm.DB) error {
			conflict, err := ap.hasConflictExcluding(tx, &appointment)
			if err != nil {
				return err
			}
			if conflict {
				return errSlotTaken
			}
			return tx.Save(&appointment).Error
		})
		if err == errSlotTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "This time slot overlaps with an existing appointment",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Server error updating appointment",
				Error:   err.Error(),
			})
		}
	} else if err := ap.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error updating appointment",
			Error:   err.Error(),
		})
	}

	ap.Cache.InvalidateBusySlots(appointment.DateTime.Format("2006-01-02"))
	return c.JSON(appointment)
}

// Reschedule updates an appointment's time, type or notes. A new time slot
// is conflict-checked against the other active appointments of that day.
func (ap *AppointmentController) Reschedule(c *fiber.Ctx) error {
	type rescheduleInput struct {
		DateTime string             `json:"dateTime"`
		Type     models.ServiceType `json:"type"`
		Notes    *string            `json:"notes"`
	}

	input := new(rescheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var appointment models.Appointment
	if err := ap.DB.Preload("Member").First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Appointment not found",
		})
	}
	previousDay := appointment.DateTime.Format("2006-01-02")

	if input.Type != "" {
		if !input.Type.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown service type",
			})
		}
		appointment.Type = input.Type
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}
	if input.DateTime != "" {
		start, err := parseDateTime(input.DateTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid date/time provided",
			})
		}
		appointment.DateTime = start.Local()
	}

	unlock := utils.LockDay(appointment.DateTime)
	defer unlock()

	err := ap.DB.Transaction(func(tx *gorm.DB) error {
		if appointment.Status == models.StatusPending || appointment.Status == models.StatusConfirmed {
			conflict, err := ap.hasConflictExcluding(tx, &appointment)
			if err != nil {
				return err
			}
			if conflict {
				return errSlotTaken
			}
		}
		return tx.Save(&appointment).Error
	})
	if err == errSlotTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This time slot overlaps with an existing appointment",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error rescheduling appointment",
			Error:   err.Error(),
		})
	}

	ap.Cache.InvalidateBusySlots(previousDay)
	ap.Cache.InvalidateBusySlots(appointment.DateTime.Format("2006-01-02"))
	return c.JSON(appointment)
}

// hasConflictExcluding checks the moved appointment against the rest of its
// day, ignoring its own row.
func (ap *AppointmentController) hasConflictExcluding(tx *gorm.DB, appointment *models.Appointment) (bool, error) {
	slots, err := utils.BusySlots(tx.Where("id <> ?", appointment.ID), appointment.DateTime)
	if err != nil {
		return false, err
	}
	end := appointment.EndTime()
	for _, slot := range slots {
		if utils.Overlaps(appointment.DateTime, end, slot.Start, slot.End) {
			return true, nil
		}
	}
	return false, nil
}

var errSlotTaken = fmt.Errorf("time slot not available")

// parseDateTime accepts RFC3339 instants and plain dates.
func parseDateTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time %q", value)
}

func (ap *AppointmentController) sendBookingEmail(appointment models.Appointment) {
	var member models.Member
	if err := ap.DB.First(&member, appointment.MemberID).Error; err != nil {
		return
	}
	subject := fmt.Sprintf("Booking received: %s", appointment.Type)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking request has been received and is awaiting
		confirmation.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Parish</p>
	`, member.FullName, appointment.Type,
		appointment.DateTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime().Format("2006-01-02 15:04:05"),
		appointment.Status)
	if err := utils.SendEmail(member.Email, subject, body); err != nil {
		log.Printf("Failed to send booking email for appointment %d: %v", appointment.ID, err)
	}
}
