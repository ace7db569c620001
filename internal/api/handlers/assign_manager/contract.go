package assign_manager

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

type StationsService interface {
	AssignManager(ctx context.Context, stationID, managerID int64) (*models.AssignmentResponse, error)
	UnassignManager(ctx context.Context, stationID, managerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
