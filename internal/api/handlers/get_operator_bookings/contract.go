package get_operator_bookings

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

type OperatorBookingsService interface {
	GetOperatorBookings(ctx context.Context, operatorID int64) (*models.OperatorBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
