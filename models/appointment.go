package models

import (
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid reports whether s is one of the recognized appointment statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether an appointment in this status occupies its time
// slot for conflict purposes.
func (s AppointmentStatus) Active() bool {
	switch s {
	case StatusPending, StatusConfirmed:
		return true
	}
	return false
}

type ServiceType string

const (
	ServiceConfession ServiceType = "confession"
	ServiceBaptism    ServiceType = "baptism"
	ServiceLiturgy    ServiceType = "liturgy"
	ServiceWedding    ServiceType = "wedding"
	ServiceBurial     ServiceType = "burial"
	ServiceOther      ServiceType = "other"
)

// serviceDurations is the fixed per-service duration policy.
var serviceDurations = map[ServiceType]time.Duration{
	ServiceConfession: 25 * time.Minute,
	ServiceBaptism:    50 * time.Minute,
	ServiceWedding:    90 * time.Minute,
	ServiceBurial:     60 * time.Minute,
	ServiceLiturgy:    120 * time.Minute,
	ServiceOther:      60 * time.Minute,
}

// Duration returns the booked length of a service. Types not present in the
// table fall back to the "other" duration rather than failing.
func (t ServiceType) Duration() time.Duration {
	if d, ok := serviceDurations[t]; ok {
		return d
	}
	return serviceDurations[ServiceOther]
}

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceConfession, ServiceBaptism, ServiceLiturgy, ServiceWedding, ServiceBurial, ServiceOther:
		return true
	}
	return false
}

type Appointment struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	MemberID  uint              `json:"memberId" gorm:"index"`
	Member    Member            `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Type      ServiceType       `json:"type"`
	DateTime  time.Time         `json:"dateTime" gorm:"index"`
	Notes     string            `json:"notes"`
	Status    AppointmentStatus `json:"status" gorm:"default:pending"`
	// ReminderSent marks that the one-hour reminder mail went out, so the
	// cron job never mails the same appointment twice.
	ReminderSent bool      `json:"-" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EndTime derives the end of the appointment's busy interval from the
// service duration table.
func (a *Appointment) EndTime() time.Time {
	return a.DateTime.Add(a.Type.Duration())
}
