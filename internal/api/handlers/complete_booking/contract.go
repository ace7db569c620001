package complete_booking

import (
	"context"

	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

type CompleteBookingService interface {
	Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
