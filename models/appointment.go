package models

import "time"

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment records a payment-confirmed booking against a specific
// (dayId, slotId) pair. Payment itself is handled upstream; this
// record only exists once the slot flip succeeded.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctorId" json:"doctorId"`
	PatientID string    `bson:"patientId" json:"patientId"`
	DayID     string    `bson:"dayId" json:"dayId"`
	SlotID    string    `bson:"slotId" json:"slotId"`
	Date      time.Time `bson:"date" json:"date"` // UTC midnight of the booked day
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
