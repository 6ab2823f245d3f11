package models

import "time"

// TimeSlot is a single bookable window inside a day's schedule.
// Start and end instants are always stored in UTC.
type TimeSlot struct {
	ID        string    `bson:"id" json:"id"`
	StartTime time.Time `bson:"startTime" json:"startTime"` // UTC instant
	EndTime   time.Time `bson:"endTime" json:"endTime"`     // UTC instant, strictly after StartTime
	IsBooked  bool      `bson:"isBooked" json:"isBooked"`
}

// Overlaps reports whether the [start,end) ranges of two slots intersect.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartTime.Before(other.EndTime) && s.EndTime.After(other.StartTime)
}

// DaySchedule groups all timeslots for one calendar date.
type DaySchedule struct {
	ID    string     `bson:"id" json:"id"`
	Date  time.Time  `bson:"date" json:"date"` // UTC midnight
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// Schedule is the per-doctor aggregate holding all availability.
// One document per doctor; days are kept sorted by date and each
// day's slots sorted by start time. Version backs optimistic
// concurrency on structural mutations.
type Schedule struct {
	DoctorID  string        `bson:"doctorId" json:"doctorId"`
	Days      []DaySchedule `bson:"days" json:"days"`
	Version   int           `bson:"version" json:"version"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// DayByDate returns the day schedule for the given UTC midnight date, or nil.
func (s *Schedule) DayByDate(date time.Time) *DaySchedule {
	for i := range s.Days {
		if s.Days[i].Date.Equal(date) {
			return &s.Days[i]
		}
	}
	return nil
}

// DayByID returns the day schedule with the given id, or nil.
func (s *Schedule) DayByID(dayID string) *DaySchedule {
	for i := range s.Days {
		if s.Days[i].ID == dayID {
			return &s.Days[i]
		}
	}
	return nil
}

// ScheduleSummary is an aggregate view derived from the future-filtered schedule.
type ScheduleSummary struct {
	DoctorID       string   `json:"doctorId"`
	FutureDays     int      `json:"futureDays"`
	TotalSlots     int      `json:"totalSlots"`
	BookedSlots    int      `json:"bookedSlots"`
	AvailableSlots int      `json:"availableSlots"`
	UpcomingDates  []string `json:"upcomingDates"` // dates with open availability, "2006-01-02"
}
