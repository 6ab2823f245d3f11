// File: handlers/appointment.go
package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/appointment"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler receives payment-confirmed and cancellation events
// from the upstream appointment workflow.
type AppointmentHandler struct {
	Coordinator appointment.CoordinatorService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(coordinator appointment.CoordinatorService) *AppointmentHandler {
	return &AppointmentHandler{Coordinator: coordinator}
}

// ConfirmAppointmentHandler books the slot and records the appointment.
// A 409 here means the booking race was lost: the caller must not treat
// the appointment as created and must void or refund the payment.
func (h *AppointmentHandler) ConfirmAppointmentHandler(c *gin.Context) {
	var req models.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Coordinator.ConfirmAppointment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, schedule.ErrSlotAlreadyBooked) {
			c.JSON(http.StatusConflict, gin.H{
				"error":        err.Error(),
				"compensation": "required",
			})
			return
		}
		respondScheduleError(c, req.DoctorID, "confirmAppointment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels a confirmed appointment and releases
// its slot.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	appointmentID := c.Param("appointmentID")

	appt, err := h.Coordinator.CancelAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, appointment.ErrAppointmentCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("appointment cancellation failed",
				zap.String("appointmentId", appointmentID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
