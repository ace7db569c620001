package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.OperatorID <= 0 {
		return fmt.Errorf("%w: operatorID must be positive", ErrInvalidInput)
	}

	if req.SlotStartUTC.IsZero() {
		return fmt.Errorf("%w: slotStartUtc is required", ErrInvalidInput)
	}

	return nil
}

// validateWindow проверяет, что начало слота лежит в окне [windowStart, windowEnd)
func validateWindow(slotStart, windowStart, windowEnd time.Time) error {
	if slotStart.Before(windowStart) || !slotStart.Before(windowEnd) {
		return ErrOutOfWindow
	}
	return nil
}
