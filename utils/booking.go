package utils

import (
	"time"

	"github.com/stnicholas-parish/parish-app/models"
	"gorm.io/gorm"
)

// BusySlot is a computed [start, end) interval derived from an existing
// appointment's start time and its service-type duration.
type BusySlot struct {
	Start time.Time          `json:"start"`
	End   time.Time          `json:"end"`
	Type  models.ServiceType `json:"type"`
}

// activeStatuses are the appointment states that occupy a slot.
var activeStatuses = []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

// DayWindow returns the [00:00:00.000, 23:59:59.999] bounds of the local
// calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// dailyAppointments loads all pending/confirmed appointments whose start
// falls on the same local day as t.
func dailyAppointments(conn *gorm.DB, t time.Time) ([]models.Appointment, error) {
	dayStart, dayEnd := DayWindow(t)
	var appointments []models.Appointment
	err := conn.
		Where("date_time >= ? AND date_time <= ?", dayStart, dayEnd).
		Where("status IN ?", activeStatuses).
		Find(&appointments).Error
	return appointments, err
}

// CheckAvailability reports whether a new appointment of the given service
// type starting at start would overlap any pending/confirmed appointment on
// the same day. Each existing appointment's end is derived from the same
// duration table.
func CheckAvailability(conn *gorm.DB, serviceType models.ServiceType, start time.Time) (bool, error) {
	end := start.Add(serviceType.Duration())

	existing, err := dailyAppointments(conn, start)
	if err != nil {
		return false, err
	}
	for _, appointment := range existing {
		if Overlaps(start, end, appointment.DateTime, appointment.EndTime()) {
			return false, nil
		}
	}
	return true, nil
}

// BusySlots returns the occupied intervals for the local day containing
// date, for clients rendering availability. An empty day yields an empty
// slice, not nil.
func BusySlots(conn *gorm.DB, date time.Time) ([]BusySlot, error) {
	appointments, err := dailyAppointments(conn, date)
	if err != nil {
		return nil, err
	}
	slots := make([]BusySlot, 0, len(appointments))
	for _, appointment := range appointments {
		slots = append(slots, BusySlot{
			Start: appointment.DateTime,
			End:   appointment.EndTime(),
			Type:  appointment.Type,
		})
	}
	return slots, nil
}
