// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"

	appointmentRepo "medibook/database/repository/appointment"
	scheduleRepo "medibook/database/repository/schedule"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := schedRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create schedule indexes: %v", err)
	}
	cancel()

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Repo:  schedRepo,
		Cache: utils.GetCacheClient(),
	}
	coordinatorService := &appointment.DefaultCoordinatorService{
		Repo:     apptRepo,
		Schedule: scheduleService,
	}

	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	appointmentHandler := handlers.NewAppointmentHandler(coordinatorService)

	routes.RegisterRoutes(router, scheduleHandler, appointmentHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
