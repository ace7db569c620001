package create_booking

import (
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	StationID    int64     // ID станции
	OperatorID   int64     // ID оператора
	SlotStartUTC time.Time // Начало 15-минутного слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64
	StationID          int64
	OperatorID         int64
	SlotStartUTC       time.Time
	SlotEndUTC         time.Time
	ArrivalDeadlineUTC time.Time
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FromDomain конвертирует domain модель в response
func FromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:                 b.ID,
		StationID:          b.StationID,
		OperatorID:         b.OperatorID,
		SlotStartUTC:       b.SlotStartUTC,
		SlotEndUTC:         b.SlotEndUTC,
		ArrivalDeadlineUTC: b.ArrivalDeadlineUTC,
		Status:             string(b.Status),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
