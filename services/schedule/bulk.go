// File: services/schedule/bulk.go
package schedule

import (
	"context"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxGenerateRangeDays caps range generation to one year of dates.
const maxGenerateRangeDays = 366

type dayUpdate struct {
	date  time.Time
	slots []models.TimeSlot
}

// mergeDaySlots appends incoming slots that fit into the day. Existing
// windows always win: a new window that duplicates a start time or
// overlaps anything already present is dropped, not an error. Returns
// how many were accepted.
func mergeDaySlots(day *models.DaySchedule, incoming []models.TimeSlot) int {
	accepted := 0
	for _, ns := range incoming {
		conflict := false
		for _, existing := range day.Slots {
			if ns.StartTime.Equal(existing.StartTime) || ns.Overlaps(existing) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		day.Slots = append(day.Slots, ns)
		accepted++
	}
	sortSlots(day.Slots)
	return accepted
}

// applyDayUpdates merges a set of per-date updates into the schedule,
// creating day schedules as needed.
func applyDayUpdates(sched *models.Schedule, updates []dayUpdate) (accepted, skipped int) {
	for _, upd := range updates {
		day := sched.DayByDate(upd.date)
		if day == nil {
			sched.Days = append(sched.Days, models.DaySchedule{
				ID:   uuid.New().String(),
				Date: upd.date,
			})
			day = &sched.Days[len(sched.Days)-1]
		}
		ok := mergeDaySlots(day, upd.slots)
		accepted += ok
		skipped += len(upd.slots) - ok
	}
	return accepted, skipped
}

// BulkUpdateSlots merges several dates of slots in one persisted write.
// Each date is processed independently; conflicting windows are silently
// skipped so re-submitting an overlapping template never aborts the batch.
func (s *DefaultScheduleService) BulkUpdateSlots(ctx context.Context, doctorID string, updates []models.DaySlotsUpdate) (*models.Schedule, error) {
	if len(updates) == 0 {
		return nil, validationError("updates must not be empty")
	}

	parsed := make([]dayUpdate, 0, len(updates))
	for _, upd := range updates {
		date, err := utils.ParseDate(upd.Date)
		if err != nil {
			return nil, validationError("%v", err)
		}
		slots := make([]models.TimeSlot, 0, len(upd.Slots))
		for _, slot := range upd.Slots {
			if !slot.EndTime.After(slot.StartTime) {
				return nil, validationError("slot on %s: endTime must be after startTime", upd.Date)
			}
			if slot.ID == "" {
				slot.ID = uuid.New().String()
			}
			slot.StartTime = slot.StartTime.UTC()
			slot.EndTime = slot.EndTime.UTC()
			slots = append(slots, slot)
		}
		parsed = append(parsed, dayUpdate{date: date, slots: slots})
	}

	var accepted, skipped int
	sched, err := s.mutate(ctx, doctorID, true, func(sched *models.Schedule) error {
		accepted, skipped = applyDayUpdates(sched, parsed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("bulk slot update applied",
		zap.String("doctorId", doctorID),
		zap.Int("accepted", accepted),
		zap.Int("skipped", skipped))
	return sched, nil
}

// GenerateSlotsForDateRange expands wall-clock templates over every date
// in the inclusive range, optionally skipping weekends, and persists the
// result as one bulk merge. Templates that resolve to past instants or
// collide with existing windows are skipped, matching bulk semantics.
func (s *DefaultScheduleService) GenerateSlotsForDateRange(ctx context.Context, doctorID string, req models.GenerateSlotsRequest) (*models.Schedule, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, validationError("%v", err)
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, validationError("%v", err)
	}
	if end.Before(start) {
		return nil, validationError("endDate %s is before startDate %s", req.EndDate, req.StartDate)
	}
	if int(end.Sub(start).Hours()/24) > maxGenerateRangeDays {
		return nil, validationError("date range exceeds %d days", maxGenerateRangeDays)
	}
	if len(req.Templates) == 0 {
		return nil, validationError("templates must not be empty")
	}
	for _, tpl := range req.Templates {
		duration := tpl.DurationMinutes
		if duration == 0 {
			continue
		}
		if duration < minSlotDurationMinutes || duration > maxSlotDurationMinutes {
			return nil, validationError("template %s: durationMinutes must be between %d and %d",
				tpl.StartTime, minSlotDurationMinutes, maxSlotDurationMinutes)
		}
	}

	now := time.Now().UTC()
	var updates []dayUpdate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if req.ExcludeWeekends && utils.IsWeekend(d) {
			continue
		}
		var slots []models.TimeSlot
		for _, tpl := range req.Templates {
			duration := tpl.DurationMinutes
			if duration == 0 {
				duration = DefaultSlotDurationMinutes
			}
			st, err := utils.ResolveWallClock(d.Format(utils.DateLayout), tpl.StartTime, req.TimeZone)
			if err != nil {
				return nil, validationError("%v", err)
			}
			if !st.After(now) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				ID:        uuid.New().String(),
				StartTime: st,
				EndTime:   st.Add(time.Duration(duration) * time.Minute),
			})
		}
		if len(slots) > 0 {
			updates = append(updates, dayUpdate{date: d, slots: slots})
		}
	}

	var accepted, skipped int
	sched, err := s.mutate(ctx, doctorID, true, func(sched *models.Schedule) error {
		accepted, skipped = applyDayUpdates(sched, updates)
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("slot range generated",
		zap.String("doctorId", doctorID),
		zap.String("startDate", req.StartDate),
		zap.String("endDate", req.EndDate),
		zap.Int("accepted", accepted),
		zap.Int("skipped", skipped))
	return sched, nil
}

// UpdateSchedule replaces a doctor's full schedule document (upsert).
// Unlike the bulk merge, the replacement is authoritative, so internal
// inconsistencies are rejected instead of silently repaired.
func (s *DefaultScheduleService) UpdateSchedule(ctx context.Context, doctorID string, days []models.DaySchedule) (*models.Schedule, error) {
	normalized := make([]models.DaySchedule, 0, len(days))
	seen := make(map[time.Time]bool, len(days))

	for _, day := range days {
		day.Date = utils.NormalizeDate(day.Date)
		if seen[day.Date] {
			return nil, validationError("duplicate day schedule for %s", day.Date.Format(utils.DateLayout))
		}
		seen[day.Date] = true
		if day.ID == "" {
			day.ID = uuid.New().String()
		}

		slots := make([]models.TimeSlot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if !slot.EndTime.After(slot.StartTime) {
				return nil, validationError("slot on %s: endTime must be after startTime", day.Date.Format(utils.DateLayout))
			}
			if slot.ID == "" {
				slot.ID = uuid.New().String()
			}
			slot.StartTime = slot.StartTime.UTC()
			slot.EndTime = slot.EndTime.UTC()
			slots = append(slots, slot)
		}
		sortSlots(slots)
		for i := 1; i < len(slots); i++ {
			if slots[i].StartTime.Before(slots[i-1].EndTime) {
				return nil, validationError("overlapping slots on %s", day.Date.Format(utils.DateLayout))
			}
		}

		// Empty days are dropped rather than persisted.
		if len(slots) == 0 {
			continue
		}
		day.Slots = slots
		normalized = append(normalized, day)
	}

	sched, err := s.mutate(ctx, doctorID, true, func(sched *models.Schedule) error {
		sched.Days = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("schedule replaced",
		zap.String("doctorId", doctorID),
		zap.Int("days", len(normalized)))
	return sched, nil
}
