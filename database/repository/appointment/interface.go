// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound         = errors.New("appointment not found")
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
)

// AppointmentRepository persists the records the coordinator creates once
// a slot flip has succeeded.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	MarkCancelled(ctx context.Context, id string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
