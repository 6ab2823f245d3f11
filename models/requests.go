package models

// AddTimeSlotRequest creates a single slot on a given date.
// Date is a calendar date ("2006-01-02") and StartTime a wall-clock
// time ("15:04") interpreted in TimeZone, then stored as UTC.
type AddTimeSlotRequest struct {
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	TimeZone        string `json:"timeZone"`
	DurationMinutes int    `json:"durationMinutes"`
}

// RemoveTimeSlotRequest identifies the slot to delete.
type RemoveTimeSlotRequest struct {
	Date string `json:"date" binding:"required"`
}

// DaySlotsUpdate is one date's worth of replacement/merge input for a bulk update.
type DaySlotsUpdate struct {
	Date  string     `json:"date" binding:"required"`
	Slots []TimeSlot `json:"slots" binding:"required"`
}

// BulkUpdateSlotsRequest merges several dates of slots in one call.
type BulkUpdateSlotsRequest struct {
	Updates []DaySlotsUpdate `json:"updates" binding:"required"`
}

// SlotTemplate is a recurring wall-clock window used by range generation.
type SlotTemplate struct {
	StartTime       string `json:"startTime" binding:"required"` // "15:04"
	DurationMinutes int    `json:"durationMinutes"`
}

// GenerateSlotsRequest expands templates over an inclusive date range.
type GenerateSlotsRequest struct {
	StartDate       string         `json:"startDate" binding:"required"`
	EndDate         string         `json:"endDate" binding:"required"`
	TimeZone        string         `json:"timeZone"`
	Templates       []SlotTemplate `json:"templates" binding:"required"`
	ExcludeWeekends bool           `json:"excludeWeekends"`
}

// UpdateScheduleRequest replaces a doctor's full schedule document.
type UpdateScheduleRequest struct {
	Days []DaySchedule `json:"days" binding:"required"`
}

// ConfirmAppointmentRequest is sent by the payment workflow once a
// payment for the given slot has been confirmed.
type ConfirmAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	PatientID string `json:"patientId" binding:"required"`
	DayID     string `json:"dayId" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
}
