package create_station

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

type StationsService interface {
	Create(ctx context.Context, req *models.CreateStationRequest) (*models.StationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
