// File: services/schedule/service.go
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"

	scheduleRepo "medibook/database/repository/schedule"
)

// maxMutationRetries bounds the optimistic-concurrency retry loop for
// structural writes. Version conflicts are the only errors retried here;
// business conflicts are terminal.
const maxMutationRetries = 3

// mutate runs the load-apply-persist cycle for a structural schedule
// change under optimistic concurrency. apply receives the current
// document (or a fresh one when createIfMissing) and edits it in place.
func (s *DefaultScheduleService) mutate(
	ctx context.Context,
	doctorID string,
	createIfMissing bool,
	apply func(*models.Schedule) error,
) (*models.Schedule, error) {
	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		sched, err := s.Repo.GetByDoctorID(ctx, doctorID)
		creating := false
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrNotFound) {
				return nil, fmt.Errorf("loading schedule for doctor %s: %w", doctorID, err)
			}
			if !createIfMissing {
				return nil, ErrScheduleNotFound
			}
			sched = &models.Schedule{DoctorID: doctorID}
			creating = true
		}

		if err := apply(sched); err != nil {
			return nil, err
		}
		normalizeSchedule(sched)

		if creating {
			err = s.Repo.Insert(ctx, sched)
		} else {
			err = s.Repo.ReplaceWithVersion(ctx, sched, sched.Version)
		}
		if errors.Is(err, scheduleRepo.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persisting schedule for doctor %s: %w", doctorID, err)
		}

		s.invalidateCache(ctx, doctorID)
		return sched, nil
	}
	return nil, ErrConcurrentUpdate
}

// normalizeSchedule restores the sort invariants after a mutation: days
// ordered by date, each day's slots ordered by start time.
func normalizeSchedule(sched *models.Schedule) {
	for i := range sched.Days {
		sortSlots(sched.Days[i].Slots)
	}
	sort.Slice(sched.Days, func(i, j int) bool {
		return sched.Days[i].Date.Before(sched.Days[j].Date)
	})
}

func sortSlots(slots []models.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}

// validationError wraps a detail message into the validation class.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *DefaultScheduleService) cacheKey(doctorID string) string {
	return "schedule:view:" + doctorID
}

// invalidateCache drops the cached future projection after any mutation.
// Cache failures are logged, never surfaced.
func (s *DefaultScheduleService) invalidateCache(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(cctx, s.cacheKey(doctorID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate schedule cache",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}

// mapRepoBookingError translates storage-level booking errors into the
// caller-facing taxonomy.
func mapRepoBookingError(err error) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrNotFound):
		return ErrScheduleNotFound
	case errors.Is(err, scheduleRepo.ErrDayNotFound):
		return ErrDayNotFound
	case errors.Is(err, scheduleRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, scheduleRepo.ErrSlotAlreadyBooked):
		return ErrSlotAlreadyBooked
	case errors.Is(err, scheduleRepo.ErrSlotNotBooked):
		return ErrSlotNotBooked
	default:
		return err
	}
}
