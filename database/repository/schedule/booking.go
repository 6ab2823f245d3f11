// File: database/repository/schedule/booking.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetSlotBooked flips a slot from available to booked as one conditional
// update: the filter only matches while the slot is still unbooked, so two
// concurrent confirmations cannot both succeed. The version bump makes the
// flip visible to optimistic structural writers.
func (r *MongoScheduleRepo) SetSlotBooked(ctx context.Context, doctorID, dayID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"days": bson.M{
			"$elemMatch": bson.M{
				"id": dayID,
				"slots": bson.M{
					"$elemMatch": bson.M{
						"id":       slotID,
						"isBooked": false,
					},
				},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{"days.$[d].slots.$[s].isBooked": true},
		"$inc": bson.M{"version": 1},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"d.id": dayID},
			bson.M{"s.id": slotID, "s.isBooked": false},
		},
	})

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error booking slot %s for doctor %s: %w", slotID, doctorID, err)
	}
	if res.MatchedCount == 0 {
		return r.resolveFailedSlotUpdate(ctx, doctorID, dayID, slotID, false)
	}
	return nil
}

// ReleaseSlot is the inverse conditional update: booked back to available.
// Used by the cancellation path.
func (r *MongoScheduleRepo) ReleaseSlot(ctx context.Context, doctorID, dayID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"days": bson.M{
			"$elemMatch": bson.M{
				"id": dayID,
				"slots": bson.M{
					"$elemMatch": bson.M{
						"id":       slotID,
						"isBooked": true,
					},
				},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{"days.$[d].slots.$[s].isBooked": false},
		"$inc": bson.M{"version": 1},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"d.id": dayID},
			bson.M{"s.id": slotID, "s.isBooked": true},
		},
	})

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("error releasing slot %s for doctor %s: %w", slotID, doctorID, err)
	}
	if res.MatchedCount == 0 {
		return r.resolveFailedSlotUpdate(ctx, doctorID, dayID, slotID, true)
	}
	return nil
}

// ToggleSlot flips a slot's booked flag regardless of its current value,
// using an aggregation-pipeline update so the read and the write stay a
// single round trip. Returns the new booked state.
func (r *MongoScheduleRepo) ToggleSlot(ctx context.Context, doctorID, dayID, slotID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"days": bson.M{
			"$elemMatch": bson.M{
				"id":    dayID,
				"slots": bson.M{"$elemMatch": bson.M{"id": slotID}},
			},
		},
	}

	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"version":   bson.M{"$add": bson.A{"$version", 1}},
			"updatedAt": "$$NOW",
			"days": bson.M{
				"$map": bson.M{
					"input": "$days",
					"as":    "d",
					"in": bson.M{
						"$cond": bson.M{
							"if":   bson.M{"$ne": bson.A{"$$d.id", dayID}},
							"then": "$$d",
							"else": bson.M{
								"$mergeObjects": bson.A{
									"$$d",
									bson.M{
										"slots": bson.M{
											"$map": bson.M{
												"input": "$$d.slots",
												"as":    "s",
												"in": bson.M{
													"$cond": bson.M{
														"if":   bson.M{"$ne": bson.A{"$$s.id", slotID}},
														"then": "$$s",
														"else": bson.M{
															"$mergeObjects": bson.A{
																"$$s",
																bson.M{"isBooked": bson.M{"$not": "$$s.isBooked"}},
															},
														},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated struct {
		Days []struct {
			ID    string `bson:"id"`
			Slots []struct {
				ID       string `bson:"id"`
				IsBooked bool   `bson:"isBooked"`
			} `bson:"slots"`
		} `bson:"days"`
	}
	err := r.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, r.resolveToggleMiss(ctx, doctorID, dayID, slotID)
		}
		return false, fmt.Errorf("error toggling slot %s for doctor %s: %w", slotID, doctorID, err)
	}

	for _, d := range updated.Days {
		if d.ID != dayID {
			continue
		}
		for _, s := range d.Slots {
			if s.ID == slotID {
				return s.IsBooked, nil
			}
		}
	}
	return false, ErrSlotNotFound
}

// resolveToggleMiss distinguishes a missing schedule, day, or slot after
// a toggle matched no document.
func (r *MongoScheduleRepo) resolveToggleMiss(ctx context.Context, doctorID, dayID, slotID string) error {
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
			// Filter and document disagree; treat as transient.
			return fmt.Errorf("toggle matched no document for slot %s", slotID)
		}
	}
	return ErrSlotNotFound
}
