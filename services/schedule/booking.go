// File: services/schedule/booking.go
package schedule

import (
	"context"

	"medibook/utils"

	"go.uber.org/zap"
)

// UpdateBookingStatus transitions a slot from available to booked. This
// is the only transition the payment-confirmation path may use: the
// precondition and the write are one conditional storage update, so of
// two concurrent confirmations exactly one succeeds and the other gets
// ErrSlotAlreadyBooked.
func (s *DefaultScheduleService) UpdateBookingStatus(ctx context.Context, doctorID, dayID, slotID string) error {
	if err := s.Repo.SetSlotBooked(ctx, doctorID, dayID, slotID); err != nil {
		mapped := mapRepoBookingError(err)
		utils.GetLogger().Warn("booking status update rejected",
			zap.String("doctorId", doctorID),
			zap.String("dayId", dayID),
			zap.String("slotId", slotID),
			zap.Error(mapped))
		return mapped
	}

	s.invalidateCache(ctx, doctorID)
	utils.GetLogger().Info("slot booked",
		zap.String("doctorId", doctorID),
		zap.String("dayId", dayID),
		zap.String("slotId", slotID))
	return nil
}

// ToggleBookingStatus flips a slot's booked flag unconditionally. Meant
// for manual corrections (doctor blocking or unblocking a window); the
// payment path must never use it. Returns the new state.
func (s *DefaultScheduleService) ToggleBookingStatus(ctx context.Context, doctorID, dayID, slotID string) (bool, error) {
	booked, err := s.Repo.ToggleSlot(ctx, doctorID, dayID, slotID)
	if err != nil {
		return false, mapRepoBookingError(err)
	}

	s.invalidateCache(ctx, doctorID)
	utils.GetLogger().Info("slot toggled",
		zap.String("doctorId", doctorID),
		zap.String("dayId", dayID),
		zap.String("slotId", slotID),
		zap.Bool("isBooked", booked))
	return booked, nil
}

// ReleaseSlot returns a booked slot to available, conditioned on it
// actually being booked. Used when an appointment is cancelled after
// confirmation.
func (s *DefaultScheduleService) ReleaseSlot(ctx context.Context, doctorID, dayID, slotID string) error {
	if err := s.Repo.ReleaseSlot(ctx, doctorID, dayID, slotID); err != nil {
		return mapRepoBookingError(err)
	}

	s.invalidateCache(ctx, doctorID)
	utils.GetLogger().Info("slot released",
		zap.String("doctorId", doctorID),
		zap.String("dayId", dayID),
		zap.String("slotId", slotID))
	return nil
}
