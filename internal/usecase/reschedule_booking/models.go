package reschedule_booking

import (
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID       int64     // ID исходного бронирования
	OperatorID      int64     // ID оператора-владельца
	NewSlotStartUTC time.Time // Начало нового слота
}

// Response модель ответа с новым бронированием
type Response struct {
	ID                 int64
	StationID          int64
	OperatorID         int64
	SlotStartUTC       time.Time
	SlotEndUTC         time.Time
	ArrivalDeadlineUTC time.Time
	Status             string
	RescheduledFromBookingID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FromDomain конвертирует domain модель в response
func FromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:                       b.ID,
		StationID:                b.StationID,
		OperatorID:               b.OperatorID,
		SlotStartUTC:             b.SlotStartUTC,
		SlotEndUTC:               b.SlotEndUTC,
		ArrivalDeadlineUTC:       b.ArrivalDeadlineUTC,
		Status:                   string(b.Status),
		RescheduledFromBookingID: b.RescheduledFromBookingID,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}
