package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a reserved battery-swap slot at a station
// Бронирования никогда не удаляются физически - только переводятся в терминальный статус
type Booking struct {
	ID                 int64
	StationID          int64
	OperatorID         int64
	SlotStartUTC       time.Time
	SlotEndUTC         time.Time // всегда SlotStartUTC + 15 минут
	ArrivalDeadlineUTC time.Time // всегда SlotEndUTC + 15 минут

	Status             BookingStatus
	CancellationReason *string

	// Ссылка на исходное бронирование при переносе
	RescheduledFromBookingID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking has left the CONFIRMED state
// Из терминального статуса возврата в CONFIRMED нет
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusConfirmed
}

// CountsTowardCapacity returns true if the booking occupies a spot in its slot
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking is still in a cancellable state
// Проверка lead time выполняется на уровне хранилища условным UPDATE
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsExpired returns true if the arrival deadline has passed
func (b *Booking) IsExpired(now time.Time) bool {
	return b.ArrivalDeadlineUTC.Before(now)
}

// StationBookingsFilter фильтр для выборки бронирований станции
type StationBookingsFilter struct {
	StationID int64           // Обязательный параметр
	FromUTC   *time.Time      // Начало периода по slot_start_utc (опционально)
	ToUTC     *time.Time      // Конец периода по slot_start_utc, не включительно (опционально)
	Statuses  []BookingStatus // Фильтр по статусам (опционально, nil - все статусы)
}
