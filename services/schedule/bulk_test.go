package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"
)

func slotAt(date string, hour, minute, durMinutes int) models.TimeSlot {
	day, _ := utils.ParseDate(date)
	start := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return models.TimeSlot{
		StartTime: start,
		EndTime:   start.Add(time.Duration(durMinutes) * time.Minute),
	}
}

func TestBulkUpdateSlots_CreatesNewDays(t *testing.T) {
	svc, _ := newTestService()
	d1, d2 := futureDate(2), futureDate(3)

	sched, err := svc.BulkUpdateSlots(context.Background(), testDoctorID, []models.DaySlotsUpdate{
		{Date: d2, Slots: []models.TimeSlot{slotAt(d2, 10, 0, 30)}},
		{Date: d1, Slots: []models.TimeSlot{slotAt(d1, 9, 0, 30), slotAt(d1, 10, 0, 30)}},
	})
	require.NoError(t, err)

	// Days sorted by date regardless of input order.
	require.Len(t, sched.Days, 2)
	assert.True(t, sched.Days[0].Date.Before(sched.Days[1].Date))
	assert.Len(t, sched.Days[0].Slots, 2)
	assert.NotEmpty(t, sched.Days[0].Slots[0].ID)
}

func TestBulkUpdateSlots_ExistingWindowsWin(t *testing.T) {
	svc, _ := newTestService()
	date := futureDate(2)
	addSlot(t, svc, date, "09:00")

	// 09:15 overlaps the existing 09:00-09:30 window and must be dropped;
	// 11:00 is clean and must land.
	sched, err := svc.BulkUpdateSlots(context.Background(), testDoctorID, []models.DaySlotsUpdate{
		{Date: date, Slots: []models.TimeSlot{slotAt(date, 9, 15, 30), slotAt(date, 11, 0, 30)}},
	})
	require.NoError(t, err)

	require.Len(t, sched.Days, 1)
	require.Len(t, sched.Days[0].Slots, 2)
	assert.Equal(t, 9, sched.Days[0].Slots[0].StartTime.Hour())
	assert.Equal(t, 11, sched.Days[0].Slots[1].StartTime.Hour())
}

func TestBulkUpdateSlots_PartialToleranceAcrossDates(t *testing.T) {
	svc, _ := newTestService()
	d1, d2 := futureDate(2), futureDate(3)
	addSlot(t, svc, d1, "09:00")

	// One date carries only a conflicting window, the other a valid one:
	// the valid window persists, only the conflict is skipped.
	sched, err := svc.BulkUpdateSlots(context.Background(), testDoctorID, []models.DaySlotsUpdate{
		{Date: d1, Slots: []models.TimeSlot{slotAt(d1, 9, 0, 30)}},
		{Date: d2, Slots: []models.TimeSlot{slotAt(d2, 9, 0, 30)}},
	})
	require.NoError(t, err)

	require.Len(t, sched.Days, 2)
	assert.Len(t, sched.Days[0].Slots, 1)
	assert.Len(t, sched.Days[1].Slots, 1)
}

func TestBulkUpdateSlots_RejectsInvertedWindow(t *testing.T) {
	svc, _ := newTestService()
	date := futureDate(2)
	bad := slotAt(date, 9, 0, 30)
	bad.StartTime, bad.EndTime = bad.EndTime, bad.StartTime

	_, err := svc.BulkUpdateSlots(context.Background(), testDoctorID, []models.DaySlotsUpdate{
		{Date: date, Slots: []models.TimeSlot{bad}},
	})
	assert.True(t, schedule.IsValidation(err))
}

func TestGenerateSlotsForDateRange_SkipsWeekends(t *testing.T) {
	svc, _ := newTestService()

	// Find the next Friday at least a week out, so Friday through Monday
	// spans exactly one weekend.
	start := utils.StartOfToday().AddDate(0, 0, 7)
	for start.Weekday() != time.Friday {
		start = start.AddDate(0, 0, 1)
	}
	end := start.AddDate(0, 0, 3) // Monday

	sched, err := svc.GenerateSlotsForDateRange(context.Background(), testDoctorID, models.GenerateSlotsRequest{
		StartDate:       start.Format(utils.DateLayout),
		EndDate:         end.Format(utils.DateLayout),
		Templates:       []models.SlotTemplate{{StartTime: "09:00", DurationMinutes: 30}},
		ExcludeWeekends: true,
	})
	require.NoError(t, err)

	require.Len(t, sched.Days, 2)
	assert.Equal(t, time.Friday, sched.Days[0].Date.Weekday())
	assert.Equal(t, time.Monday, sched.Days[1].Date.Weekday())
}

func TestGenerateSlotsForDateRange_AppliesAllTemplatesInclusive(t *testing.T) {
	svc, _ := newTestService()
	start := utils.StartOfToday().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)

	sched, err := svc.GenerateSlotsForDateRange(context.Background(), testDoctorID, models.GenerateSlotsRequest{
		StartDate: start.Format(utils.DateLayout),
		EndDate:   end.Format(utils.DateLayout),
		Templates: []models.SlotTemplate{
			{StartTime: "09:00", DurationMinutes: 30},
			{StartTime: "10:00", DurationMinutes: 45},
		},
	})
	require.NoError(t, err)

	require.Len(t, sched.Days, 3)
	for _, day := range sched.Days {
		require.Len(t, day.Slots, 2)
		assert.Equal(t, 45*time.Minute, day.Slots[1].EndTime.Sub(day.Slots[1].StartTime))
	}
}

func TestGenerateSlotsForDateRange_SkipsConflictsWithExisting(t *testing.T) {
	svc, _ := newTestService()
	start := utils.StartOfToday().AddDate(0, 0, 7)
	date := start.Format(utils.DateLayout)
	addSlot(t, svc, date, "09:00")

	sched, err := svc.GenerateSlotsForDateRange(context.Background(), testDoctorID, models.GenerateSlotsRequest{
		StartDate: date,
		EndDate:   date,
		Templates: []models.SlotTemplate{
			{StartTime: "09:00", DurationMinutes: 30},
			{StartTime: "14:00", DurationMinutes: 30},
		},
	})
	require.NoError(t, err)

	require.Len(t, sched.Days, 1)
	require.Len(t, sched.Days[0].Slots, 2)

	// The 09:00 template collided with the pre-existing slot and was
	// skipped; the original slot id survived.
	assert.Equal(t, 9, sched.Days[0].Slots[0].StartTime.Hour())
	assert.Equal(t, 14, sched.Days[0].Slots[1].StartTime.Hour())
}

func TestGenerateSlotsForDateRange_Validation(t *testing.T) {
	svc, _ := newTestService()
	start := futureDate(7)

	_, err := svc.GenerateSlotsForDateRange(context.Background(), testDoctorID, models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   futureDate(5),
		Templates: []models.SlotTemplate{{StartTime: "09:00"}},
	})
	assert.True(t, schedule.IsValidation(err))

	_, err = svc.GenerateSlotsForDateRange(context.Background(), testDoctorID, models.GenerateSlotsRequest{
		StartDate: start,
		EndDate:   futureDate(8),
	})
	assert.True(t, schedule.IsValidation(err))
}

func TestUpdateSchedule_ReplacesDocument(t *testing.T) {
	svc, _ := newTestService()
	d1 := futureDate(2)
	addSlot(t, svc, d1, "09:00")

	d2 := futureDate(5)
	day, _ := utils.ParseDate(d2)
	sched, err := svc.UpdateSchedule(context.Background(), testDoctorID, []models.DaySchedule{
		{Date: day, Slots: []models.TimeSlot{slotAt(d2, 10, 0, 30)}},
	})
	require.NoError(t, err)

	// Full replacement: the old day is gone.
	require.Len(t, sched.Days, 1)
	assert.True(t, sched.Days[0].Date.Equal(day))
}

func TestUpdateSchedule_RejectsOverlapsWithinDay(t *testing.T) {
	svc, _ := newTestService()
	d := futureDate(2)
	day, _ := utils.ParseDate(d)

	_, err := svc.UpdateSchedule(context.Background(), testDoctorID, []models.DaySchedule{
		{Date: day, Slots: []models.TimeSlot{slotAt(d, 9, 0, 60), slotAt(d, 9, 30, 30)}},
	})
	assert.True(t, schedule.IsValidation(err))
}
