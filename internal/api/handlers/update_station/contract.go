package update_station

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

type StationsService interface {
	Update(ctx context.Context, stationID int64, req *models.UpdateStationRequest) (*models.StationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
