// File: services/appointment/coordinator.go
package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
)

// ConfirmAppointment is invoked once the payment subsystem reports a
// confirmed payment for a specific (dayId, slotId) pair. The slot flip
// happens first; if it fails with a booking conflict the race was lost,
// no appointment is created, and the conflict propagates unchanged so
// the caller can trigger payment compensation.
func (s *DefaultCoordinatorService) ConfirmAppointment(ctx context.Context, req models.ConfirmAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if err := s.Schedule.UpdateBookingStatus(ctx, req.DoctorID, req.DayID, req.SlotID); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		DayID:     req.DayID,
		SlotID:    req.SlotID,
		Date:      s.lookupDayDate(ctx, req.DoctorID, req.DayID),
		Status:    models.AppointmentConfirmed,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		// The slot was flipped but the record could not be written;
		// release the slot so availability stays consistent.
		if relErr := s.Schedule.ReleaseSlot(ctx, req.DoctorID, req.DayID, req.SlotID); relErr != nil {
			logger.Error("failed to release slot after appointment create failure",
				zap.String("doctorId", req.DoctorID),
				zap.String("dayId", req.DayID),
				zap.String("slotId", req.SlotID),
				zap.Error(relErr))
		}
		return nil, fmt.Errorf("creating appointment for slot %s: %w", req.SlotID, err)
	}

	logger.Info("appointment confirmed",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", req.DoctorID),
		zap.String("slotId", req.SlotID))
	return appt, nil
}

// CancelAppointment marks a confirmed appointment cancelled and returns
// its slot to available. The status flip is conditional, so a repeated
// cancel is rejected instead of double-releasing the slot.
func (s *DefaultCoordinatorService) CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if err := s.Repo.MarkCancelled(ctx, appointmentID); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrAlreadyCancelled):
			return nil, ErrAppointmentCancelled
		default:
			return nil, fmt.Errorf("cancelling appointment %s: %w", appointmentID, err)
		}
	}

	appt, err := s.Repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("loading cancelled appointment %s: %w", appointmentID, err)
	}

	if err := s.Schedule.ReleaseSlot(ctx, appt.DoctorID, appt.DayID, appt.SlotID); err != nil {
		// A manual toggle may already have freed the slot; cancellation
		// still stands.
		if !errors.Is(err, schedule.ErrSlotNotBooked) {
			logger.Error("failed to release slot on cancellation",
				zap.String("appointmentId", appointmentID),
				zap.String("slotId", appt.SlotID),
				zap.Error(err))
			return nil, err
		}
	}

	logger.Info("appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("slotId", appt.SlotID))
	return appt, nil
}

// lookupDayDate resolves the calendar date for a day id; zero when the
// projection no longer contains the day.
func (s *DefaultCoordinatorService) lookupDayDate(ctx context.Context, doctorID, dayID string) time.Time {
	view, err := s.Schedule.FindSchedule(ctx, doctorID)
	if err != nil {
		return time.Time{}
	}
	if day := view.DayByID(dayID); day != nil {
		return day.Date
	}
	return time.Time{}
}
