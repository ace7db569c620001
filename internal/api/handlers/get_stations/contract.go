package get_stations

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/stations/models"
)

type StationsService interface {
	List(ctx context.Context) (*models.StationListResponse, error)
	ListForManager(ctx context.Context, managerID int64) (*models.StationListResponse, error)
	Get(ctx context.Context, stationID int64) (*models.StationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
