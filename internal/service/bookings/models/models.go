package models

import (
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования оператором
type CancelBookingRequest struct {
	OperatorID int64   `json:"operatorId"`
	Reason     *string `json:"reason,omitempty"`
}

// CompleteBookingRequest запрос на завершение бронирования менеджером
type CompleteBookingRequest struct {
	ManagerID int64 `json:"managerId"`
	StationID int64 `json:"stationId"`
}

// GetStationBookingsRequest запрос бронирований станции за период
type GetStationBookingsRequest struct {
	ManagerID int64      `json:"managerId"`
	StationID int64      `json:"stationId"`
	FromUTC   *time.Time `json:"fromUtc,omitempty"` // Начало периода (опционально)
	ToUTC     *time.Time `json:"toUtc,omitempty"`   // Конец периода, не включительно (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64  `json:"id"`
	StationID          int64  `json:"stationId"`
	OperatorID         int64  `json:"operatorId"`
	SlotStartUTC       string `json:"slotStartUtc"`       // ISO 8601
	SlotEndUTC         string `json:"slotEndUtc"`         // ISO 8601
	ArrivalDeadlineUTC string `json:"arrivalDeadlineUtc"` // ISO 8601
	Status             string `json:"status"`

	CancellationReason       *string `json:"cancellationReason,omitempty"`
	RescheduledFromBookingID *int64  `json:"rescheduledFromBookingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// OperatorBookingsResponse предстоящие и прошедшие бронирования оператора
type OperatorBookingsResponse struct {
	Upcoming []BookingResponse `json:"upcoming"`
	History  []BookingResponse `json:"history"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                       b.ID,
		StationID:                b.StationID,
		OperatorID:               b.OperatorID,
		SlotStartUTC:             b.SlotStartUTC.UTC().Format(time.RFC3339),
		SlotEndUTC:               b.SlotEndUTC.UTC().Format(time.RFC3339),
		ArrivalDeadlineUTC:       b.ArrivalDeadlineUTC.UTC().Format(time.RFC3339),
		Status:                   string(b.Status),
		CancellationReason:       b.CancellationReason,
		RescheduledFromBookingID: b.RescheduledFromBookingID,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}
