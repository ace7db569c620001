package bookings

import (
	"fmt"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
	"github.com/dkurganov/BSS-BookingService/internal/service/bookings/models"
)

func validateCancelRequest(bookingID int64, req *models.CancelBookingRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if bookingID <= 0 {
		return fmt.Errorf("%w: invalid booking ID: %d", ErrInvalidInput, bookingID)
	}
	if req.OperatorID <= 0 {
		return fmt.Errorf("%w: invalid operator ID: %d", ErrInvalidInput, req.OperatorID)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

func validateCompleteRequest(bookingID int64, req *models.CompleteBookingRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if bookingID <= 0 {
		return fmt.Errorf("%w: invalid booking ID: %d", ErrInvalidInput, bookingID)
	}
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: invalid manager ID: %d", ErrInvalidInput, req.ManagerID)
	}
	if req.StationID <= 0 {
		return fmt.Errorf("%w: invalid station ID: %d", ErrInvalidInput, req.StationID)
	}
	return nil
}

func validateStationBookingsRequest(req *models.GetStationBookingsRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: invalid manager ID: %d", ErrInvalidInput, req.ManagerID)
	}
	if req.StationID <= 0 {
		return fmt.Errorf("%w: invalid station ID: %d", ErrInvalidInput, req.StationID)
	}
	if req.FromUTC != nil && req.ToUTC != nil && !req.ToUTC.After(*req.FromUTC) {
		return fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidTimeRange)
	}
	return nil
}
