package create_booking

import (
	"time"

	createBooking "github.com/dkurganov/BSS-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StationID    int64  `json:"stationId"`
	SlotStartUTC string `json:"slotStartUtc"` // "2026-01-10T10:15:00Z"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64  `json:"id"`
	StationID          int64  `json:"stationId"`
	OperatorID         int64  `json:"operatorId"`
	SlotStartUTC       string `json:"slotStartUtc"`
	SlotEndUTC         string `json:"slotEndUtc"`
	ArrivalDeadlineUTC string `json:"arrivalDeadlineUtc"`
	Status             string `json:"status"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(operatorID int64) (*createBooking.Request, error) {
	slotStart, err := time.Parse(time.RFC3339, r.SlotStartUTC)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StationID:    r.StationID,
		OperatorID:   operatorID,
		SlotStartUTC: slotStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		StationID:          resp.StationID,
		OperatorID:         resp.OperatorID,
		SlotStartUTC:       resp.SlotStartUTC.Format(time.RFC3339),
		SlotEndUTC:         resp.SlotEndUTC.Format(time.RFC3339),
		ArrivalDeadlineUTC: resp.ArrivalDeadlineUTC.Format(time.RFC3339),
		Status:             resp.Status,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
