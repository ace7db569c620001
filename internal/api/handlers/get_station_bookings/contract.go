package get_station_bookings

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

type StationBookingsService interface {
	GetStationBookings(ctx context.Context, req *models.GetStationBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
