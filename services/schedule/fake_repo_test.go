package schedule_test

import (
	"context"
	"sync"

	"medibook/models"

	scheduleRepo "medibook/database/repository/schedule"
)

// fakeScheduleRepo is an in-memory ScheduleRepository. Every method runs
// under one mutex, so the conditional booking updates are atomic exactly
// the way the Mongo implementation's single-document updates are.
type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]*models.Schedule

	// injectConflicts makes the next n structural writes fail with a
	// version conflict, to exercise the optimistic retry loop.
	injectConflicts int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]*models.Schedule)}
}

func cloneSchedule(s *models.Schedule) *models.Schedule {
	out := &models.Schedule{
		DoctorID:  s.DoctorID,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
		Days:      make([]models.DaySchedule, len(s.Days)),
	}
	for i, d := range s.Days {
		nd := d
		nd.Slots = make([]models.TimeSlot, len(d.Slots))
		copy(nd.Slots, d.Slots)
		out.Days[i] = nd
	}
	return out
}

func (r *fakeScheduleRepo) GetByDoctorID(_ context.Context, doctorID string) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[doctorID]
	if !ok {
		return nil, scheduleRepo.ErrNotFound
	}
	return cloneSchedule(s), nil
}

func (r *fakeScheduleRepo) Insert(_ context.Context, schedule *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[schedule.DoctorID]; ok {
		return scheduleRepo.ErrVersionConflict
	}
	schedule.Version = 1
	r.schedules[schedule.DoctorID] = cloneSchedule(schedule)
	return nil
}

func (r *fakeScheduleRepo) ReplaceWithVersion(_ context.Context, schedule *models.Schedule, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.injectConflicts > 0 {
		r.injectConflicts--
		return scheduleRepo.ErrVersionConflict
	}
	stored, ok := r.schedules[schedule.DoctorID]
	if !ok || stored.Version != expectedVersion {
		return scheduleRepo.ErrVersionConflict
	}
	schedule.Version = expectedVersion + 1
	r.schedules[schedule.DoctorID] = cloneSchedule(schedule)
	return nil
}

func (r *fakeScheduleRepo) findSlot(doctorID, dayID, slotID string) (*models.Schedule, *models.TimeSlot, error) {
	s, ok := r.schedules[doctorID]
	if !ok {
		return nil, nil, scheduleRepo.ErrNotFound
	}
	day := s.DayByID(dayID)
	if day == nil {
		return nil, nil, scheduleRepo.ErrDayNotFound
	}
	for i := range day.Slots {
		if day.Slots[i].ID == slotID {
			return s, &day.Slots[i], nil
		}
	}
	return nil, nil, scheduleRepo.ErrSlotNotFound
}

func (r *fakeScheduleRepo) SetSlotBooked(_ context.Context, doctorID, dayID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, slot, err := r.findSlot(doctorID, dayID, slotID)
	if err != nil {
		return err
	}
	if slot.IsBooked {
		return scheduleRepo.ErrSlotAlreadyBooked
	}
	slot.IsBooked = true
	s.Version++
	return nil
}

func (r *fakeScheduleRepo) ReleaseSlot(_ context.Context, doctorID, dayID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, slot, err := r.findSlot(doctorID, dayID, slotID)
	if err != nil {
		return err
	}
	if !slot.IsBooked {
		return scheduleRepo.ErrSlotNotBooked
	}
	slot.IsBooked = false
	s.Version++
	return nil
}

func (r *fakeScheduleRepo) ToggleSlot(_ context.Context, doctorID, dayID, slotID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, slot, err := r.findSlot(doctorID, dayID, slotID)
	if err != nil {
		return false, err
	}
	slot.IsBooked = !slot.IsBooked
	s.Version++
	return slot.IsBooked, nil
}

// seed stores a schedule directly, bypassing the service.
func (r *fakeScheduleRepo) seed(s *models.Schedule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Version == 0 {
		s.Version = 1
	}
	r.schedules[s.DoctorID] = cloneSchedule(s)
}
