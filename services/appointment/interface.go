// File: services/appointment/interface.go
package appointment

import (
	"context"
	"errors"

	"medibook/models"
	"medibook/services/schedule"

	appointmentRepo "medibook/database/repository/appointment"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment already cancelled")
)

// CoordinatorService reacts to external payment events: confirmation
// books the slot and records the appointment, cancellation releases it.
// It never initiates payment itself.
type CoordinatorService interface {
	ConfirmAppointment(ctx context.Context, req models.ConfirmAppointmentRequest) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
}

// DefaultCoordinatorService is the production coordinator.
type DefaultCoordinatorService struct {
	Repo     appointmentRepo.AppointmentRepository
	Schedule schedule.ScheduleService
}
