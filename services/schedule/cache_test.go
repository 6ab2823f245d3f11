package schedule_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"
)

func newCachedTestService(t *testing.T) (*schedule.DefaultScheduleService, *fakeScheduleRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newFakeScheduleRepo()
	return &schedule.DefaultScheduleService{Repo: repo, Cache: client}, repo, mr
}

func cacheKeyFor(doctorID string) string {
	return "schedule:view:" + doctorID
}

// A projection is stored filtered, but slots keep expiring while it sits
// in redis. A hit must never surface a slot whose end has passed.
func TestFindSchedule_CacheHitDropsSlotsExpiredSinceStore(t *testing.T) {
	svc, _, mr := newCachedTestService(t)
	now := time.Now().UTC()
	today := utils.NormalizeDate(now)

	view := &models.Schedule{
		DoctorID: testDoctorID,
		Days: []models.DaySchedule{{
			ID:   "day-1",
			Date: today,
			Slots: []models.TimeSlot{
				{ID: "ended", StartTime: now.Add(-time.Hour), EndTime: now.Add(-time.Second)},
				{ID: "open", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
			},
		}},
	}
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKeyFor(testDoctorID), string(raw)))

	got, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)

	require.Len(t, got.Days, 1)
	require.Len(t, got.Days[0].Slots, 1)
	assert.Equal(t, "open", got.Days[0].Slots[0].ID)
}

func TestFindSchedule_CacheHitOmitsDayEmptiedSinceStore(t *testing.T) {
	svc, _, mr := newCachedTestService(t)
	now := time.Now().UTC()

	view := &models.Schedule{
		DoctorID: testDoctorID,
		Days: []models.DaySchedule{{
			ID:   "day-1",
			Date: utils.NormalizeDate(now),
			Slots: []models.TimeSlot{
				{ID: "ended", StartTime: now.Add(-time.Hour), EndTime: now.Add(-time.Minute)},
			},
		}},
	}
	raw, err := json.Marshal(view)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKeyFor(testDoctorID), string(raw)))

	got, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)
	assert.Empty(t, got.Days)
}

func TestFindSchedule_PopulatesCacheAndMutationInvalidates(t *testing.T) {
	svc, repo, mr := newCachedTestService(t)
	seedMixedSchedule(repo, time.Now().UTC())

	_, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cacheKeyFor(testDoctorID)))

	addSlot(t, svc, futureDate(5), "09:00")
	assert.False(t, mr.Exists(cacheKeyFor(testDoctorID)))
}

func TestFindSchedule_ServesCachedProjection(t *testing.T) {
	svc, repo, _ := newCachedTestService(t)
	now := time.Now().UTC()
	seedMixedSchedule(repo, now)

	first, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)
	require.Len(t, first.Days, 2)

	// A storage change that bypasses the service stays invisible until
	// the entry expires or a mutation invalidates it.
	repo.seed(&models.Schedule{DoctorID: testDoctorID})

	second, err := svc.FindSchedule(context.Background(), testDoctorID)
	require.NoError(t, err)
	assert.Len(t, second.Days, 2)
}
