package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/dkurganov/BSS-BookingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewSlotStartUTC string `json:"newSlotStartUtc"` // "2026-01-10T14:30:00Z"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                       int64  `json:"id"`
	StationID                int64  `json:"stationId"`
	OperatorID               int64  `json:"operatorId"`
	SlotStartUTC             string `json:"slotStartUtc"`
	SlotEndUTC               string `json:"slotEndUtc"`
	ArrivalDeadlineUTC       string `json:"arrivalDeadlineUtc"`
	Status                   string `json:"status"`
	RescheduledFromBookingID *int64 `json:"rescheduledFromBookingId,omitempty"`
	CreatedAt                string `json:"createdAt"`
	UpdatedAt                string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, operatorID int64) (*rescheduleBooking.Request, error) {
	newSlotStart, err := time.Parse(time.RFC3339, r.NewSlotStartUTC)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID:       bookingID,
		OperatorID:      operatorID,
		NewSlotStartUTC: newSlotStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                       resp.ID,
		StationID:                resp.StationID,
		OperatorID:               resp.OperatorID,
		SlotStartUTC:             resp.SlotStartUTC.Format(time.RFC3339),
		SlotEndUTC:               resp.SlotEndUTC.Format(time.RFC3339),
		ArrivalDeadlineUTC:       resp.ArrivalDeadlineUTC.Format(time.RFC3339),
		Status:                   resp.Status,
		RescheduledFromBookingID: resp.RescheduledFromBookingID,
		CreatedAt:                resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                resp.UpdatedAt.Format(time.RFC3339),
	}
}
