// File: services/schedule/slots.go
package schedule

import (
	"context"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSlotDurationMinutes is applied when a request omits the duration.
const DefaultSlotDurationMinutes = 30

const (
	minSlotDurationMinutes = 5
	maxSlotDurationMinutes = 8 * 60
)

// AddTimeSlot creates a single slot on the given date, creating the day
// schedule on first use. Past instants, duplicate start times, and
// overlapping windows are rejected.
func (s *DefaultScheduleService) AddTimeSlot(ctx context.Context, doctorID string, req models.AddTimeSlotRequest) (*models.Schedule, error) {
	duration := req.DurationMinutes
	if duration == 0 {
		duration = DefaultSlotDurationMinutes
	}
	if duration < minSlotDurationMinutes || duration > maxSlotDurationMinutes {
		return nil, validationError("durationMinutes must be between %d and %d", minSlotDurationMinutes, maxSlotDurationMinutes)
	}

	start, err := utils.ResolveWallClock(req.Date, req.StartTime, req.TimeZone)
	if err != nil {
		return nil, validationError("%v", err)
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, validationError("%v", err)
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// Instant comparison, not date-only: a 23:30 slot added at 23:45
	// local time is in the past even though the date is today.
	if !start.After(time.Now().UTC()) {
		return nil, ErrSlotTimePassed
	}

	newSlot := models.TimeSlot{
		ID:        uuid.New().String(),
		StartTime: start,
		EndTime:   end,
	}

	sched, err := s.mutate(ctx, doctorID, true, func(sched *models.Schedule) error {
		day := sched.DayByDate(date)
		if day == nil {
			sched.Days = append(sched.Days, models.DaySchedule{
				ID:   uuid.New().String(),
				Date: date,
			})
			day = &sched.Days[len(sched.Days)-1]
		}

		for _, existing := range day.Slots {
			if existing.StartTime.Equal(newSlot.StartTime) {
				return ErrSlotAlreadyExists
			}
			if newSlot.Overlaps(existing) {
				return ErrSlotOverlaps
			}
		}
		day.Slots = append(day.Slots, newSlot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("time slot added",
		zap.String("doctorId", doctorID),
		zap.String("date", req.Date),
		zap.String("slotId", newSlot.ID))
	return sched, nil
}

// RemoveTimeSlot deletes an unbooked slot. Booked slots must be released
// first (or the appointment cancelled); removal never touches them. A day
// left empty is dropped from the schedule.
func (s *DefaultScheduleService) RemoveTimeSlot(ctx context.Context, doctorID, date, slotID string) (*models.Schedule, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, validationError("%v", err)
	}

	sched, err := s.mutate(ctx, doctorID, false, func(sched *models.Schedule) error {
		ds := sched.DayByDate(day)
		if ds == nil {
			return ErrDayNotFound
		}

		idx := -1
		for i, slot := range ds.Slots {
			if slot.ID == slotID {
				if slot.IsBooked {
					return ErrSlotBooked
				}
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrSlotNotFound
		}
		ds.Slots = append(ds.Slots[:idx], ds.Slots[idx+1:]...)

		// No empty days persist.
		if len(ds.Slots) == 0 {
			for i := range sched.Days {
				if sched.Days[i].ID == ds.ID {
					sched.Days = append(sched.Days[:i], sched.Days[i+1:]...)
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("time slot removed",
		zap.String("doctorId", doctorID),
		zap.String("date", date),
		zap.String("slotId", slotID))
	return sched, nil
}
