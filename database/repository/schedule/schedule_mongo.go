// File: database/repository/schedule/schedule_mongo.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByDoctorID retrieves a doctor's schedule document.
// Returns ErrNotFound when no schedule exists yet for the doctor.
func (r *MongoScheduleRepo) GetByDoctorID(ctx context.Context, doctorID string) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var schedule models.Schedule
	filter := bson.M{"doctorId": doctorID}
	if err := r.coll.FindOne(ctx, filter).Decode(&schedule); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching schedule for doctor %s: %w", doctorID, err)
	}
	return &schedule, nil
}

// Insert creates the first schedule document for a doctor. A concurrent
// insert for the same doctor trips the unique doctorId index and is
// reported as ErrVersionConflict so the caller re-reads and retries.
func (r *MongoScheduleRepo) Insert(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	schedule.Version = 1
	schedule.UpdatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, schedule); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("error inserting schedule for doctor %s: %w", schedule.DoctorID, err)
	}
	return nil
}

// ReplaceWithVersion swaps in a new days array only if the stored version
// still equals expectedVersion. MatchedCount of zero means another writer
// got there first (or a booking flip bumped the version) and is reported
// as ErrVersionConflict.
func (r *MongoScheduleRepo) ReplaceWithVersion(ctx context.Context, schedule *models.Schedule, expectedVersion int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": schedule.DoctorID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"days":      schedule.Days,
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error replacing schedule for doctor %s: %w", schedule.DoctorID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	schedule.Version = expectedVersion + 1
	return nil
}

// resolveFailedSlotUpdate explains why a conditional slot update matched
// nothing. precondBooked is the booked state the failed update's filter
// required: if the slot itself exists, the precondition is what failed.
func (r *MongoScheduleRepo) resolveFailedSlotUpdate(ctx context.Context, doctorID, dayID, slotID string, precondBooked bool) error {
	schedule, err := r.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return err
	}
	day := schedule.DayByID(dayID)
	if day == nil {
		return ErrDayNotFound
	}
	for _, slot := range day.Slots {
		if slot.ID == slotID {
			if precondBooked {
				return ErrSlotNotBooked
			}
			return ErrSlotAlreadyBooked
		}
	}
	return ErrSlotNotFound
}
