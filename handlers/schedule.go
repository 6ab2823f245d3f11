// File: handlers/schedule.go
package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the availability engine over HTTP.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// scheduleErrorStatus maps the service error taxonomy onto HTTP codes:
// validation 400, conflicts 409, not-found 404, everything else 500.
func scheduleErrorStatus(err error) int {
	switch {
	case schedule.IsValidation(err):
		return http.StatusBadRequest
	case schedule.IsConflict(err):
		return http.StatusConflict
	case schedule.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondScheduleError(c *gin.Context, doctorID, op string, err error) {
	status := scheduleErrorStatus(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("schedule operation failed",
			zap.String("doctorId", doctorID),
			zap.String("operation", op),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// GetScheduleHandler returns the future-filtered schedule for a doctor.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	sched, err := h.Service.FindSchedule(c.Request.Context(), doctorID)
	if err != nil {
		respondScheduleError(c, doctorID, "findSchedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// UpdateScheduleHandler replaces the doctor's full schedule document.
func (h *ScheduleHandler) UpdateScheduleHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.UpdateSchedule(c.Request.Context(), doctorID, req.Days)
	if err != nil {
		respondScheduleError(c, doctorID, "updateSchedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// AddTimeSlotHandler creates a single slot.
func (h *ScheduleHandler) AddTimeSlotHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	var req models.AddTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.AddTimeSlot(c.Request.Context(), doctorID, req)
	if err != nil {
		respondScheduleError(c, doctorID, "addTimeSlot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// RemoveTimeSlotHandler deletes an unbooked slot.
func (h *ScheduleHandler) RemoveTimeSlotHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	slotID := c.Param("slotID")

	var req models.RemoveTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid date in request body"})
		return
	}

	sched, err := h.Service.RemoveTimeSlot(c.Request.Context(), doctorID, req.Date, slotID)
	if err != nil {
		respondScheduleError(c, doctorID, "removeTimeSlot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// BulkUpdateSlotsHandler merges several dates of slots in one call.
func (h *ScheduleHandler) BulkUpdateSlotsHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	var req models.BulkUpdateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.BulkUpdateSlots(c.Request.Context(), doctorID, req.Updates)
	if err != nil {
		respondScheduleError(c, doctorID, "bulkUpdateSlots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// GenerateSlotsHandler expands templates over a date range.
func (h *ScheduleHandler) GenerateSlotsHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	var req models.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.GenerateSlotsForDateRange(c.Request.Context(), doctorID, req)
	if err != nil {
		respondScheduleError(c, doctorID, "generateSlotsForDateRange", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

// GetAvailableSlotsHandler lists unbooked slots for one date.
func (h *ScheduleHandler) GetAvailableSlotsHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing date query parameter"})
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		respondScheduleError(c, doctorID, "getAvailableSlots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetScheduleSummaryHandler returns aggregate availability counts.
func (h *ScheduleHandler) GetScheduleSummaryHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	summary, err := h.Service.GetScheduleSummary(c.Request.Context(), doctorID)
	if err != nil {
		respondScheduleError(c, doctorID, "getScheduleSummary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// UpdateBookingStatusHandler books a slot (available to booked only).
func (h *ScheduleHandler) UpdateBookingStatusHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	dayID := c.Param("dayID")
	slotID := c.Param("slotID")

	if err := h.Service.UpdateBookingStatus(c.Request.Context(), doctorID, dayID, slotID); err != nil {
		respondScheduleError(c, doctorID, "updateBookingStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot booked"})
}

// ToggleBookingStatusHandler flips a slot's booked flag unconditionally.
func (h *ScheduleHandler) ToggleBookingStatusHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	dayID := c.Param("dayID")
	slotID := c.Param("slotID")

	booked, err := h.Service.ToggleBookingStatus(c.Request.Context(), doctorID, dayID, slotID)
	if err != nil {
		respondScheduleError(c, doctorID, "toggleBookingStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isBooked": booked})
}
