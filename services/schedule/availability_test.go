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

// seedMixedSchedule stores a schedule with one fully past day, one day
// containing an expired and a future slot, and one future day.
func seedMixedSchedule(repo *fakeScheduleRepo, now time.Time) {
	yesterday := utils.NormalizeDate(now.AddDate(0, 0, -1))
	today := utils.NormalizeDate(now)
	tomorrow := utils.NormalizeDate(now.AddDate(0, 0, 1))

	repo.seed(&models.Schedule{
		DoctorID: testDoctorID,
		Days: []models.DaySchedule{
			{
				ID:   "day-past",
				Date: yesterday,
				Slots: []models.TimeSlot{
					{ID: "s1", StartTime: yesterday.Add(9 * time.Hour), EndTime: yesterday.Add(10 * time.Hour)},
				},
			},
			{
				ID:   "day-today",
				Date: today,
				Slots: []models.TimeSlot{
					{ID: "s2", StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-1 * time.Hour)},
					{ID: "s3", StartTime: now.Add(1 * time.Hour), EndTime: now.Add(2 * time.Hour)},
				},
			},
			{
				ID:   "day-future",
				Date: tomorrow,
				Slots: []models.TimeSlot{
					{ID: "s4", StartTime: tomorrow.Add(9 * time.Hour), EndTime: tomorrow.Add(10 * time.Hour), IsBooked: true},
					{ID: "s5", StartTime: tomorrow.Add(10 * time.Hour), EndTime: tomorrow.Add(11 * time.Hour)},
				},
			},
		},
	})
}

func TestFilterFuture_DropsPastDaysAndExpiredSlots(t *testing.T) {
	now := time.Date(2031, 6, 18, 12, 0, 0, 0, time.UTC)
	yesterday := utils.NormalizeDate(now.AddDate(0, 0, -1))
	today := utils.NormalizeDate(now)

	sched := &models.Schedule{
		DoctorID: testDoctorID,
		Days: []models.DaySchedule{
			{ID: "d0", Date: yesterday, Slots: []models.TimeSlot{
				{ID: "a", StartTime: yesterday.Add(9 * time.Hour), EndTime: yesterday.Add(10 * time.Hour)},
			}},
			{ID: "d1", Date: today, Slots: []models.TimeSlot{
				{ID: "b", StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-30 * time.Minute)},
				{ID: "c", StartTime: now.Add(-15 * time.Minute), EndTime: now.Add(15 * time.Minute)},
				{ID: "d", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
			}},
		},
	}

	view := schedule.FilterFuture(sched, now)

	require.Len(t, view.Days, 1)
	require.Len(t, view.Days[0].Slots, 2)
	// A slot still in progress (end after now) is kept.
	assert.Equal(t, "c", view.Days[0].Slots[0].ID)
	assert.Equal(t, "d", view.Days[0].Slots[1].ID)

	// The source schedule is untouched.
	assert.Len(t, sched.Days, 2)
	assert.Len(t, sched.Days[1].Slots, 3)
}

func TestFilterFuture_OmitsDayEmptiedByFilter(t *testing.T) {
	now := time.Date(2031, 6, 18, 23, 0, 0, 0, time.UTC)
	today := utils.NormalizeDate(now)

	sched := &models.Schedule{
		DoctorID: testDoctorID,
		Days: []models.DaySchedule{
			{ID: "d1", Date: today, Slots: []models.TimeSlot{
				{ID: "a", StartTime: today.Add(9 * time.Hour), EndTime: today.Add(10 * time.Hour)},
			}},
		},
	}

	view := schedule.FilterFuture(sched, now)
	assert.Empty(t, view.Days)
}

func TestFindSchedule_ReturnsFutureView(t *testing.T) {
	svc, repo := newTestService()
	seedMixedSchedule(repo, time.Now().UTC())

	view, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)

	require.Len(t, view.Days, 2)
	assert.Equal(t, "day-today", view.Days[0].ID)
	require.Len(t, view.Days[0].Slots, 1)
	assert.Equal(t, "s3", view.Days[0].Slots[0].ID)
	assert.Equal(t, "day-future", view.Days[1].ID)
	assert.Len(t, view.Days[1].Slots, 2)
}

func TestFindSchedule_EmptyForUnknownDoctor(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.FindSchedule(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", view.DoctorID)
	assert.Empty(t, view.Days)
}

func TestGetAvailableSlots_ExcludesBooked(t *testing.T) {
	svc, repo := newTestService()
	now := time.Now().UTC()
	seedMixedSchedule(repo, now)
	tomorrow := utils.NormalizeDate(now.AddDate(0, 0, 1)).Format(utils.DateLayout)

	slots, err := svc.GetAvailableSlots(context.Background(), testDoctorID, tomorrow)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "s5", slots[0].ID)
}

func TestGetAvailableSlots_AbsenceIsEmptyNotError(t *testing.T) {
	svc, repo := newTestService()

	slots, err := svc.GetAvailableSlots(context.Background(), "nobody", futureDate(1))
	require.NoError(t, err)
	assert.Empty(t, slots)

	seedMixedSchedule(repo, time.Now().UTC())
	slots, err = svc.GetAvailableSlots(context.Background(), testDoctorID, futureDate(30))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetScheduleSummary_Counts(t *testing.T) {
	svc, repo := newTestService()
	now := time.Now().UTC()
	seedMixedSchedule(repo, now)

	summary, err := svc.GetScheduleSummary(context.Background(), testDoctorID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FutureDays)
	assert.Equal(t, 3, summary.TotalSlots)
	assert.Equal(t, 1, summary.BookedSlots)
	assert.Equal(t, 2, summary.AvailableSlots)
	require.Len(t, summary.UpcomingDates, 2)
	assert.Equal(t, utils.NormalizeDate(now).Format(utils.DateLayout), summary.UpcomingDates[0])
}
