// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Storage-level failure conditions. The service layer translates these
// into its caller-facing error taxonomy.
var (
	ErrNotFound          = errors.New("schedule not found")
	ErrDayNotFound       = errors.New("day schedule not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrSlotNotBooked     = errors.New("slot is not booked")
	ErrVersionConflict   = errors.New("schedule version conflict")
)

// ScheduleRepository defines data access for per-doctor schedule documents.
//
// Structural writes (Insert/ReplaceWithVersion) use optimistic concurrency:
// the whole days array is replaced only when the stored version still matches.
// Booking flips (SetSlotBooked/ReleaseSlot/ToggleSlot) are single conditional
// updates so the precondition check and the mutation cannot be separated
// under concurrent callers.
type ScheduleRepository interface {
	GetByDoctorID(ctx context.Context, doctorID string) (*models.Schedule, error)
	Insert(ctx context.Context, schedule *models.Schedule) error
	ReplaceWithVersion(ctx context.Context, schedule *models.Schedule, expectedVersion int) error
	SetSlotBooked(ctx context.Context, doctorID, dayID, slotID string) error
	ReleaseSlot(ctx context.Context, doctorID, dayID, slotID string) error
	ToggleSlot(ctx context.Context, doctorID, dayID, slotID string) (bool, error)
}

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() *MongoScheduleRepo {
	return &MongoScheduleRepo{
		coll: database.DB().Collection("schedules"),
	}
}
