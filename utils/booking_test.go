package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stnicholas-parish/parish-app/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&models.Appointment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestServiceDurations(t *testing.T) {
	tests := []struct {
		serviceType models.ServiceType
		want        time.Duration
	}{
		{models.ServiceConfession, 25 * time.Minute},
		{models.ServiceBaptism, 50 * time.Minute},
		{models.ServiceWedding, 90 * time.Minute},
		{models.ServiceBurial, 60 * time.Minute},
		{models.ServiceLiturgy, 120 * time.Minute},
		{models.ServiceOther, 60 * time.Minute},
		{models.ServiceType("vespers"), 60 * time.Minute}, // untabled falls back to other
	}
	for _, tt := range tests {
		if got := tt.serviceType.Duration(); got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.serviceType, got, tt.want)
		}
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2030, 5, 10, 14, 30, 0, 0, time.Local)
	start, end := DayWindow(at)

	if want := time.Date(2030, 5, 10, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Errorf("day start = %v, want %v", start, want)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("day end = %v, want 23:59:59 of the same day", end)
	}
	if end.Day() != 10 {
		t.Errorf("day end leaked into the next day: %v", end)
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2030, 5, 10, 10, 0, 0, 0, time.Local)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", at(0), at(25), at(30), at(60), false},
		{"adjacent intervals do not overlap", at(0), at(25), at(25), at(50), false},
		{"partial overlap", at(0), at(25), at(20), at(70), true},
		{"contained", at(0), at(60), at(10), at(20), true},
		{"identical", at(0), at(25), at(0), at(25), true},
		{"second before first", at(30), at(60), at(0), at(31), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	conn := openTestDB(t)
	day := time.Date(2030, 5, 10, 10, 0, 0, 0, time.Local)

	// confession 10:00-10:25
	if err := conn.Create(&models.Appointment{
		MemberID: 1,
		Type:     models.ServiceConfession,
		DateTime: day,
		Status:   models.StatusPending,
	}).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	tests := []struct {
		name        string
		serviceType models.ServiceType
		start       time.Time
		want        bool
	}{
		{"baptism at 10:20 overlaps", models.ServiceBaptism, day.Add(20 * time.Minute), false},
		{"confession at 10:25 is adjacent", models.ServiceConfession, day.Add(25 * time.Minute), true},
		{"liturgy at 09:00 runs into it", models.ServiceLiturgy, day.Add(-time.Hour), false},
		{"other day is free", models.ServiceWedding, day.AddDate(0, 0, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckAvailability(conn, tt.serviceType, tt.start)
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckAvailability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckAvailabilityIgnoresInactiveStatuses(t *testing.T) {
	conn := openTestDB(t)
	day := time.Date(2030, 5, 10, 10, 0, 0, 0, time.Local)

	for _, status := range []models.AppointmentStatus{models.StatusCancelled, models.StatusCompleted} {
		if err := conn.Create(&models.Appointment{
			MemberID: 1,
			Type:     models.ServiceLiturgy,
			DateTime: day,
			Status:   status,
		}).Error; err != nil {
			t.Fatalf("seed appointment: %v", err)
		}
	}

	available, err := CheckAvailability(conn, models.ServiceLiturgy, day)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !available {
		t.Error("cancelled and completed appointments must not block a slot")
	}
}

func TestBusySlotsEmptyDay(t *testing.T) {
	conn := openTestDB(t)

	slots, err := BusySlots(conn, time.Date(2030, 5, 10, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("BusySlots: %v", err)
	}
	if slots == nil {
		t.Fatal("BusySlots returned nil, want empty slice")
	}
	if len(slots) != 0 {
		t.Errorf("BusySlots returned %d slots, want 0", len(slots))
	}
}

func TestBusySlotsDerivedEnds(t *testing.T) {
	conn := openTestDB(t)
	day := time.Date(2030, 5, 10, 9, 0, 0, 0, time.Local)

	if err := conn.Create(&models.Appointment{
		MemberID: 1,
		Type:     models.ServiceWedding,
		DateTime: day,
		Status:   models.StatusConfirmed,
	}).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	slots, err := BusySlots(conn, day)
	if err != nil {
		t.Fatalf("BusySlots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("BusySlots returned %d slots, want 1", len(slots))
	}
	if !slots[0].End.Equal(day.Add(90 * time.Minute)) {
		t.Errorf("wedding slot end = %v, want %v", slots[0].End, day.Add(90*time.Minute))
	}
	if slots[0].Type != models.ServiceWedding {
		t.Errorf("slot type = %q, want wedding", slots[0].Type)
	}
}

func TestLockDaySerializesBookings(t *testing.T) {
	conn := openTestDB(t)
	day := time.Date(2030, 5, 10, 10, 0, 0, 0, time.Local)

	var wg sync.WaitGroup
	created := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := LockDay(day)
			defer unlock()

			available, err := CheckAvailability(conn, models.ServiceConfession, day)
			if err != nil {
				t.Errorf("CheckAvailability: %v", err)
				return
			}
			if !available {
				created <- false
				return
			}
			if err := conn.Create(&models.Appointment{
				MemberID: 1,
				Type:     models.ServiceConfession,
				DateTime: day,
				Status:   models.StatusPending,
			}).Error; err != nil {
				t.Errorf("create: %v", err)
				return
			}
			created <- true
		}()
	}
	wg.Wait()
	close(created)

	wins := 0
	for ok := range created {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d concurrent bookings succeeded for the same slot, want exactly 1", wins)
	}

	var count int64
	conn.Model(&models.Appointment{}).Count(&count)
	if count != 1 {
		t.Errorf("%d appointments persisted, want 1", count)
	}
}
