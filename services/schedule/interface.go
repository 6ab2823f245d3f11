// File: services/schedule/interface.go
package schedule

import (
	"context"

	"medibook/models"

	"github.com/go-redis/redis/v8"

	scheduleRepo "medibook/database/repository/schedule"
)

// ScheduleService is the internal service surface of the availability and
// slot-booking engine. All mutations are scoped to a single doctor.
type ScheduleService interface {
	// Availability queries.
	FindSchedule(ctx context.Context, doctorID string) (*models.Schedule, error)
	GetAvailableSlots(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error)
	GetScheduleSummary(ctx context.Context, doctorID string) (*models.ScheduleSummary, error)

	// Slot mutation engine.
	UpdateSchedule(ctx context.Context, doctorID string, days []models.DaySchedule) (*models.Schedule, error)
	AddTimeSlot(ctx context.Context, doctorID string, req models.AddTimeSlotRequest) (*models.Schedule, error)
	RemoveTimeSlot(ctx context.Context, doctorID, date, slotID string) (*models.Schedule, error)
	BulkUpdateSlots(ctx context.Context, doctorID string, updates []models.DaySlotsUpdate) (*models.Schedule, error)
	GenerateSlotsForDateRange(ctx context.Context, doctorID string, req models.GenerateSlotsRequest) (*models.Schedule, error)

	// Booking state controller.
	UpdateBookingStatus(ctx context.Context, doctorID, dayID, slotID string) error
	ToggleBookingStatus(ctx context.Context, doctorID, dayID, slotID string) (bool, error)
	ReleaseSlot(ctx context.Context, doctorID, dayID, slotID string) error
}

// DefaultScheduleService is the production implementation backed by the
// schedule repository, with an optional redis read cache for the
// future-filtered projection.
type DefaultScheduleService struct {
	Repo  scheduleRepo.ScheduleRepository
	Cache *redis.Client
}
