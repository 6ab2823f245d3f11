package routes

import (
	"time"

	"medibook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers all availability engine endpoints.
func RegisterScheduleRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	api := r.Group("/api/schedule")
	{
		api.GET("/:doctorID", h.GetScheduleHandler)
		api.PUT("/:doctorID", h.UpdateScheduleHandler)
		api.GET("/:doctorID/summary", h.GetScheduleSummaryHandler)

		api.POST("/:doctorID/slots", h.AddTimeSlotHandler)
		api.DELETE("/:doctorID/slots/:slotID", h.RemoveTimeSlotHandler)
		api.POST("/:doctorID/slots/bulk", h.BulkUpdateSlotsHandler)
		api.POST("/:doctorID/slots/generate", h.GenerateSlotsHandler)
		api.GET("/:doctorID/slots/available", h.GetAvailableSlotsHandler)

		api.PATCH("/:doctorID/days/:dayID/slots/:slotID/book", h.UpdateBookingStatusHandler)
		api.PATCH("/:doctorID/days/:dayID/slots/:slotID/toggle", h.ToggleBookingStatusHandler)
	}
}

// RegisterAppointmentRoutes registers the coordinator endpoints consumed
// by the payment workflow.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.POST("/confirm", h.ConfirmAppointmentHandler)
		api.POST("/:appointmentID/cancel", h.CancelAppointmentHandler)
	}
}

// RegisterRoutes wires global middleware and all endpoint groups.
func RegisterRoutes(r *gin.Engine, sh *handlers.ScheduleHandler, ah *handlers.AppointmentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	RegisterScheduleRoutes(r, sh)
	RegisterAppointmentRoutes(r, ah)
}
