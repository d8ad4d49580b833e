package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// StartReminderJobs starts the scheduler that mails members about upcoming
// confirmed appointments.
func StartReminderJobs(conn *gorm.DB) *cron.Cron {
	c := cron.New()
	// Run every minute to catch appointments starting in about an hour.
	_, err := c.AddFunc("* * * * *", func() { sendAppointmentReminders(conn, time.Now()) })
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
	return c
}

// dueReminders selects the confirmed appointments starting 55 to 65 minutes
// after now that have not been reminded yet.
func dueReminders(conn *gorm.DB, now time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := conn.Preload("Member").
		Where("status = ? AND reminder_sent = ? AND date_time BETWEEN ? AND ?",
			models.StatusConfirmed, false, now.Add(55*time.Minute), now.Add(65*time.Minute)).
		Find(&appointments).Error
	return appointments, err
}

func sendAppointmentReminders(conn *gorm.DB, now time.Time) {
	appointments, err := dueReminders(conn, now)
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if err := conn.Model(&models.Appointment{}).Where("id = ?", appointment.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Member.Email)
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming %s", appointment.Type)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, contact the parish as soon
		as possible.</p>
		<p>Best regards,</p>
		<p>The Parish</p>
	`, appointment.Member.FullName, appointment.Type,
		appointment.DateTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime().Format("2006-01-02 15:04:05"))

	return utils.SendEmail(appointment.Member.Email, subject, body)
}
