// File: services/schedule/availability.go
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	scheduleRepo "medibook/database/repository/schedule"
)

// FilterFuture returns a copy of the schedule restricted to days from
// the start of now's calendar day onward, keeping only slots whose end
// lies after now. Days emptied by the filter are omitted. Storage is
// never modified; this is a read-time projection.
func FilterFuture(sched *models.Schedule, now time.Time) *models.Schedule {
	now = now.UTC()
	today := utils.NormalizeDate(now)

	out := &models.Schedule{
		DoctorID:  sched.DoctorID,
		Version:   sched.Version,
		UpdatedAt: sched.UpdatedAt,
		Days:      []models.DaySchedule{},
	}
	for _, day := range sched.Days {
		if day.Date.Before(today) {
			continue
		}
		kept := make([]models.TimeSlot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if slot.EndTime.After(now) {
				kept = append(kept, slot)
			}
		}
		if len(kept) == 0 {
			continue
		}
		day.Slots = kept
		out.Days = append(out.Days, day)
	}
	return out
}

// FindSchedule returns the future-filtered view of a doctor's schedule.
// A doctor with no schedule yet gets an empty document, not an error.
// The projection is served from redis when fresh.
func (s *DefaultScheduleService) FindSchedule(ctx context.Context, doctorID string) (*models.Schedule, error) {
	if cached := s.cachedSchedule(ctx, doctorID); cached != nil {
		// The entry was filtered at store time; slots may have expired
		// while it sat in redis, so the filter runs again on every hit.
		return FilterFuture(cached, time.Now()), nil
	}

	sched, err := s.Repo.GetByDoctorID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return &models.Schedule{DoctorID: doctorID, Days: []models.DaySchedule{}}, nil
		}
		return nil, fmt.Errorf("loading schedule for doctor %s: %w", doctorID, err)
	}

	view := FilterFuture(sched, time.Now())
	s.storeCachedSchedule(ctx, doctorID, view)
	return view, nil
}

// GetAvailableSlots lists the unbooked slots for one date. Absence of a
// schedule or of the date is an empty result: "no availability" is a
// normal state, not an error.
func (s *DefaultScheduleService) GetAvailableSlots(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, validationError("%v", err)
	}

	sched, err := s.Repo.GetByDoctorID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			return []models.TimeSlot{}, nil
		}
		return nil, fmt.Errorf("loading schedule for doctor %s: %w", doctorID, err)
	}

	ds := sched.DayByDate(day)
	if ds == nil {
		return []models.TimeSlot{}, nil
	}

	available := make([]models.TimeSlot, 0, len(ds.Slots))
	for _, slot := range ds.Slots {
		if !slot.IsBooked {
			available = append(available, slot)
		}
	}
	return available, nil
}

// maxUpcomingDates bounds the summary's list of dates with open slots.
const maxUpcomingDates = 7

// GetScheduleSummary aggregates counts over the future-filtered view.
// It carries no state of its own.
func (s *DefaultScheduleService) GetScheduleSummary(ctx context.Context, doctorID string) (*models.ScheduleSummary, error) {
	view, err := s.FindSchedule(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	summary := &models.ScheduleSummary{
		DoctorID:      doctorID,
		FutureDays:    len(view.Days),
		UpcomingDates: []string{},
	}
	for _, day := range view.Days {
		open := false
		for _, slot := range day.Slots {
			summary.TotalSlots++
			if slot.IsBooked {
				summary.BookedSlots++
			} else {
				summary.AvailableSlots++
				open = true
			}
		}
		if open && len(summary.UpcomingDates) < maxUpcomingDates {
			summary.UpcomingDates = append(summary.UpcomingDates, day.Date.Format(utils.DateLayout))
		}
	}
	return summary, nil
}

func (s *DefaultScheduleService) cachedSchedule(ctx context.Context, doctorID string) *models.Schedule {
	if s.Cache == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := s.Cache.Get(cctx, s.cacheKey(doctorID)).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("schedule cache read failed",
				zap.String("doctorId", doctorID), zap.Error(err))
		}
		return nil
	}
	var view models.Schedule
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil
	}
	return &view
}

func (s *DefaultScheduleService) storeCachedSchedule(ctx context.Context, doctorID string, view *models.Schedule) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Cache.Set(cctx, s.cacheKey(doctorID), raw, utils.ScheduleCacheTTL()).Err(); err != nil {
		utils.GetLogger().Warn("schedule cache write failed",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}
